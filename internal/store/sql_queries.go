package store

import (
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildGetDocumentQuery(documentID string) (string, []any, error) {
	return psql.
		Select("document_id", "payload", "version", "updated_at").
		From("documents").
		Where(sq.Eq{"document_id": documentID}).
		ToSql()
}

func buildSaveDocumentQuery(documentID string, payload json.RawMessage) (string, []any, error) {
	return psql.
		Insert("documents").
		Columns("document_id", "payload").
		Values(documentID, string(payload)).
		Suffix(`ON CONFLICT (document_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			version = documents.version + 1,
			updated_at = NOW()
		RETURNING version, updated_at`).
		ToSql()
}
