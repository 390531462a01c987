package postgres

// SQL queries for dataset storage operations

const (
	// querySaveDataset inserts a dataset. ON CONFLICT DO NOTHING returns no
	// rows (sql.ErrNoRows) for a duplicate id.
	querySaveDataset = `
		INSERT INTO datasets (
			id, name, source, row_count, column_count, data, insights, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
		RETURNING id
	`

	queryGetDataset = `
		SELECT
			id, name, source, row_count, column_count, created_at, data, insights
		FROM datasets
		WHERE id = $1
	`

	// queryListDatasets skips the data column so listing stays cheap.
	queryListDatasets = `
		SELECT
			id, name, source, row_count, column_count, created_at
		FROM datasets
		ORDER BY created_at DESC, id ASC
	`

	queryDeleteDataset = `DELETE FROM datasets WHERE id = $1`

	queryDeleteDatasetsBefore = `
		DELETE FROM datasets
		WHERE created_at < $1
		RETURNING id
	`

	queryUpdateInsights = `UPDATE datasets SET insights = $2 WHERE id = $1`
)
