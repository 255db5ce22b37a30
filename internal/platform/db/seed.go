package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedType struct {
	name        string
	description string
	category    string
}

var baselineDocumentTypes = []seedType{
	{name: "CPF", description: "Cadastro de Pessoas Físicas", category: "tax_id"},
	{name: "RG", description: "Registro Geral", category: "general"},
	{name: "Carteira de Trabalho", description: "Carteira de Trabalho e Previdência Social", category: "general"},
}

// Seed inserts the baseline document types when they are missing.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for _, dt := range baselineDocumentTypes {
		var count int
		err := pool.QueryRow(ctx, `
      SELECT COUNT(1)
      FROM document_types
      WHERE lower(name) = lower($1) AND is_active
    `, dt.name).Scan(&count)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO document_types (name, description, category)
      VALUES ($1, $2, $3)
    `, dt.name, dt.description, dt.category); err != nil {
			return err
		}
	}
	return nil
}
