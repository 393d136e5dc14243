package postgres

// SQL for the ranking engine. The only columns ever written are
// best_seller_rank, is_best_seller and ranking_updated_at on products.

const (
	queryTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
		)
	`

	// aggregateSelect is completed by aggregateQuery with WHERE predicates.
	// Grouping happens in Postgres: sale volume is orders of magnitude larger than
	// product count, so rows are never pulled into the process.
	aggregateSelect = `
		SELECT
			s.product_id,
			COALESCE(SUM(s.quantity), 0) AS total_quantity,
			COALESCE(SUM(s.quantity * s.unit_price), 0) AS total_revenue,
			COUNT(DISTINCT s.buyer_id) AS unique_buyers,
			MIN(s.occurred_at) AS first_sale_at,
			MAX(s.occurred_at) AS last_sale_at
		FROM sales s
		JOIN products p ON p.id = s.product_id`

	aggregateGroupOrder = `
		GROUP BY s.product_id
		ORDER BY s.product_id ASC`

	productColumns = `id, name, vendor_id, category_id, best_seller_rank, is_best_seller, ranking_updated_at`

	queryGetProduct = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	queryGetProducts = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)
	`

	queryListAllProductIDs = `SELECT id FROM products ORDER BY id ASC`

	// queryResetRankingState leaves every product at {NULL, false}. Rows already in
	// that state are skipped so they are not rewritten.
	queryResetRankingState = `
		UPDATE products
		SET best_seller_rank = NULL, is_best_seller = FALSE, ranking_updated_at = $1
		WHERE best_seller_rank IS NOT NULL OR is_best_seller
	`

	queryUpdateRankingState = `
		UPDATE products
		SET best_seller_rank = $2, is_best_seller = $3, ranking_updated_at = $4
		WHERE id = $1
	`

	queryCountBestSellers = `SELECT COUNT(*) FROM products WHERE is_best_seller`

	queryListBestSellers = `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_best_seller
		ORDER BY best_seller_rank ASC NULLS LAST, id ASC
		LIMIT $1 OFFSET $2
	`
)
