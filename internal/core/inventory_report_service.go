package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ── Queries ───────────────────────────────────────────────────────────────────

const queryInventorySummary = `
	SELECT SUM(i.total_cost * st.qty) AS total_value, SUM(st.qty) AS total_quantity
	FROM stockmoves st
	JOIN items i ON st.stockid = i.id`

// queryStockLevels is split around the optional location filter; the WHERE
// clause slots in between the base and the tail.
const queryStockLevels = `
	SELECT
	    c.id AS category_id,
	    c.category AS category_name,
	    i.id AS item_id,
	    i.description AS item_name,
	    SUM(st.qty) AS stock_quantity,
	    MAX(st.tyme) AS last_purchased_date,
	    CURRENT_DATE - MAX(st.tyme)::date AS days_in_inventory,
	    SUM(st.qty) * i.total_cost AS stock_value,
	    l.locationname
	FROM stockmoves st
	JOIN items i ON st.stockid = i.id
	JOIN items_categoryii c ON i.category_id = c.id
	JOIN locations l ON st.loccode = l.loccode`

const queryStockLevelsTail = `
	GROUP BY c.id, c.category, i.id, i.description, i.total_cost, l.loccode, l.locationname
	ORDER BY c.id, stock_value DESC`

const queryLowStock = `
	SELECT i.id, i.description, SUM(st.qty) AS stock_quantity
	FROM stockmoves st
	JOIN items i ON st.stockid = i.id
	GROUP BY i.id, i.description
	HAVING SUM(st.qty) < $1 AND SUM(st.qty) > 0`

const queryOverstock = `
	SELECT i.id, i.description, SUM(st.qty) AS stock_quantity
	FROM stockmoves st
	JOIN items i ON st.stockid = i.id
	GROUP BY i.id, i.description
	HAVING SUM(st.qty) > $1`

const queryTopSelling = `
	SELECT si.description, SUM(si.quantity_purchased) AS qty,
	       SUM(si.item_total_cost) AS total_sales
	FROM sales_items si
	JOIN sales s ON si.sale_id = s.id
	WHERE s.date BETWEEN $1::date AND $2::date
	GROUP BY si.item_id, si.description
	ORDER BY total_sales DESC
	LIMIT $3`

const querySlowMoving = `
	SELECT si.description, SUM(si.quantity_purchased) AS qty,
	       SUM(si.item_total_cost) AS total_sales
	FROM sales_items si
	JOIN sales s ON si.sale_id = s.id
	WHERE s.date BETWEEN $1::date AND $2::date
	GROUP BY si.item_id, si.description
	ORDER BY total_sales ASC
	LIMIT $3`

const queryNegativeQuantities = `
	SELECT i.id, i.description, SUM(st.qty) AS stock_balance, l.locationname
	FROM stockmoves st
	JOIN items i ON st.stockid = i.id
	JOIN locations l ON l.loccode = st.loccode
	GROUP BY i.id, i.description, l.loccode, l.locationname
	HAVING SUM(st.qty) < 0
	ORDER BY stock_balance ASC`

const queryCOGS = `
	SELECT SUM(si.item_buy_price * si.quantity_purchased) AS cogs
	FROM sales_items si
	JOIN sales s ON si.sale_id = s.id
	WHERE s.date BETWEEN $1::date AND $2::date
	  AND si.item_buy_price > 0
	  AND si.quantity_purchased > 0`

const queryAverageInventory = `
	SELECT AVG(total_stock) AS average_inventory
	FROM (
	    SELECT SUM(st.qty * i.total_cost) AS total_stock
	    FROM stockmoves st
	    JOIN items i ON st.stockid = i.id
	    WHERE st.trandate BETWEEN $1::date AND $2::date
	      AND st.qty > 0
	      AND i.total_cost > 0
	) AS inventory`

const queryIncomingStock = `
	SELECT
	    st.stkmoveno,
	    i.description AS item_name,
	    st.qty AS quantity_received,
	    i.total_cost AS unit_cost,
	    st.qty * i.total_cost AS stock_value,
	    st.tyme AS received_date,
	    l.locationname AS warehouse_location
	FROM stockmoves st
	JOIN items i ON st.stockid = i.id
	JOIN locations l ON st.loccode = l.loccode
	WHERE st.qty > 0
	  AND st.tyme::date BETWEEN $1::date AND $2::date`

const queryOutgoingStock = `
	SELECT
	    i.id AS item_id,
	    i.description AS item_name,
	    SUM(ABS(st.qty)) AS total_quantity_moved,
	    MAX(st.tyme) AS last_transaction_date,
	    l.locationname AS warehouse_location,
	    SUM(ABS(st.qty) * i.total_cost) AS total_stock_value
	FROM stockmoves st
	JOIN items i ON st.stockid = i.id
	JOIN locations l ON st.loccode = l.loccode
	WHERE st.qty < 0
	  AND st.tyme::date BETWEEN $1::date AND $2::date
	GROUP BY i.id, i.description, l.locationname
	ORDER BY total_stock_value DESC`

// queryDeadStock lists stocked items with no sale in the window; the left
// join against sold item ids filters to never-sold stock.
const queryDeadStock = `
	SELECT
	    i.id AS item_id,
	    i.description AS item_name,
	    c.id AS category_id,
	    c.category AS category_name,
	    SUM(st.qty) AS stock_quantity,
	    SUM(st.qty) * i.total_cost AS stock_value,
	    MAX(st.tyme) AS last_purchased_date,
	    CURRENT_DATE - MAX(st.tyme)::date AS days_in_inventory,
	    l.locationname AS warehouse_location
	FROM stockmoves st
	JOIN items i ON st.stockid = i.id
	JOIN locations l ON st.loccode = l.loccode
	JOIN items_categoryii c ON i.category_id = c.id
	LEFT JOIN (
	    SELECT si.item_id
	    FROM sales_items si
	    JOIN sales s ON si.sale_id = s.id
	    WHERE s.date BETWEEN $1::date AND $2::date
	    GROUP BY si.item_id
	) sales_data ON i.id = sales_data.item_id
	WHERE sales_data.item_id IS NULL
	  AND st.qty > 0
	GROUP BY i.id, i.description, i.total_cost, c.id, c.category, l.locationname
	ORDER BY stock_value DESC`

// ── Service ───────────────────────────────────────────────────────────────────

// InventoryReportService generates inventory-domain reports. The inventory
// domain validates categories: an unknown one fails before any query.
type InventoryReportService interface {
	Report(ctx context.Context, req InventoryReportRequest) (*Envelope, error)
}

type inventoryReportService struct {
	exec Executor
	now  func() time.Time
}

// NewInventoryReportService constructs an InventoryReportService backed by
// the given query executor.
func NewInventoryReportService(exec Executor) InventoryReportService {
	return &inventoryReportService{exec: exec, now: time.Now}
}

type inventoryRunner func(ctx context.Context, s *inventoryReportService, p ResolvedParams) ([]any, error)

// inventoryReport binds one category to its parameter rules and runner.
// altDates marks the categories that read the legacy fromdate/todate field
// spelling instead of from_date/to_date.
type inventoryReport struct {
	dates     dateRule
	altDates  bool
	threshold int
	limit     int
	run       inventoryRunner
}

var inventoryReports = map[string]inventoryReport{
	"summary":             {dates: datesNone, run: runInventorySummary},
	"stock_levels":        {dates: datesNone, run: runStockLevels},
	"low_stock":           {dates: datesNone, threshold: defaultLowStockThreshold, run: runStockThreshold(queryLowStock)},
	"overstock":           {dates: datesNone, threshold: defaultOverstockThreshold, run: runStockThreshold(queryOverstock)},
	"top_selling":         {dates: datesMonthToDate, limit: defaultRankingLimit, run: runRankedItems(queryTopSelling)},
	"slow_moving":         {dates: datesMonthToDate, limit: defaultRankingLimit, run: runRankedItems(querySlowMoving)},
	"negative_quantities": {dates: datesNone, run: inventoryFlat(queryNegativeQuantities)},
	"turnover_rate":       {dates: datesMonthToDate, altDates: true, run: runTurnoverRate},
	"incoming_stock":      {dates: datesMonthToDate, run: runIncomingStock},
	"outgoing_stock":      {dates: datesMonthBack, run: inventoryFlatRange(queryOutgoingStock)},
	"dead_stock":          {dates: datesMonthToDate, run: runDeadStock},
}

func (s *inventoryReportService) Report(ctx context.Context, req InventoryReportRequest) (*Envelope, error) {
	def, ok := inventoryReports[req.Category]
	if !ok {
		return nil, &InvalidCategoryError{Domain: "inventory", Category: req.Category}
	}

	reqFrom, reqTo := req.FromDate, req.ToDate
	if def.altDates {
		reqFrom, reqTo = req.FromDate2, req.ToDate2
	}
	from, to := resolveDates(def.dates, reqFrom, reqTo, s.now())

	p := ResolvedParams{
		From:       from,
		To:         to,
		Threshold:  orDefault(req.Threshold, def.threshold),
		Limit:      orDefault(req.Limit, def.limit),
		LocationID: req.LocationID,
		Location:   req.Location,
	}

	items, err := def.run(ctx, s, p)
	if err != nil {
		return nil, &ReportError{Domain: "inventory", Err: err}
	}
	return dataEnvelope(items), nil
}

func inventoryFlat(query string) inventoryRunner {
	return func(ctx context.Context, s *inventoryReportService, _ ResolvedParams) ([]any, error) {
		rows, err := s.exec.Select(ctx, query)
		if err != nil {
			return nil, err
		}
		return rowsAsAny(rows), nil
	}
}

func inventoryFlatRange(query string) inventoryRunner {
	return func(ctx context.Context, s *inventoryReportService, p ResolvedParams) ([]any, error) {
		rows, err := s.exec.Select(ctx, query, p.From, p.To)
		if err != nil {
			return nil, err
		}
		return rowsAsAny(rows), nil
	}
}

func runStockThreshold(query string) inventoryRunner {
	return func(ctx context.Context, s *inventoryReportService, p ResolvedParams) ([]any, error) {
		rows, err := s.exec.Select(ctx, query, p.Threshold)
		if err != nil {
			return nil, err
		}
		return rowsAsAny(rows), nil
	}
}

func runRankedItems(query string) inventoryRunner {
	return func(ctx context.Context, s *inventoryReportService, p ResolvedParams) ([]any, error) {
		rows, err := s.exec.Select(ctx, query, p.From, p.To, p.Limit)
		if err != nil {
			return nil, err
		}
		return rowsAsAny(rows), nil
	}
}

// runInventorySummary is a single-row summary pass-through.
func runInventorySummary(ctx context.Context, s *inventoryReportService, _ ResolvedParams) ([]any, error) {
	row, err := s.exec.SelectOne(ctx, queryInventorySummary)
	if err != nil {
		return nil, err
	}
	return oneRowAsAny(row), nil
}

func runIncomingStock(ctx context.Context, s *inventoryReportService, p ResolvedParams) ([]any, error) {
	q := queryIncomingStock
	args := []any{p.From, p.To}
	if p.Location != "" {
		args = append(args, p.Location)
		q += " AND l.locationname = $3"
	}
	q += " ORDER BY st.tyme DESC"

	rows, err := s.exec.Select(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return rowsAsAny(rows), nil
}

// ── Turnover rate ─────────────────────────────────────────────────────────────

// TurnoverRateReport is the two-query ratio result: cost of goods sold over
// the period divided by the average on-hand inventory value. A zero average
// yields a zero rate, never a division error. All figures round to 2 places.
type TurnoverRateReport struct {
	StockTurnoverRate decimal.Decimal `json:"stock_turnover_rate"`
	COGS              decimal.Decimal `json:"cogs"`
	AverageInventory  decimal.Decimal `json:"average_inventory"`
}

func runTurnoverRate(ctx context.Context, s *inventoryReportService, p ResolvedParams) ([]any, error) {
	cogsRow, err := s.exec.SelectOne(ctx, queryCOGS, p.From, p.To)
	if err != nil {
		return nil, err
	}
	invRow, err := s.exec.SelectOne(ctx, queryAverageInventory, p.From, p.To)
	if err != nil {
		return nil, err
	}

	// Absent rows and NULL aggregates both coerce to zero.
	var cogs, avgInventory decimal.Decimal
	if cogsRow != nil {
		cogs = rowDecimal(cogsRow, "cogs")
	}
	if invRow != nil {
		avgInventory = rowDecimal(invRow, "average_inventory")
	}

	rate := decimal.Zero
	if avgInventory.IsPositive() {
		rate = cogs.Div(avgInventory)
	}

	return []any{&TurnoverRateReport{
		StockTurnoverRate: rate.Round(2),
		COGS:              cogs.Round(2),
		AverageInventory:  avgInventory.Round(2),
	}}, nil
}

// ── Stock level / dead stock grouping ─────────────────────────────────────────

// stockItemRow is the typed shape shared by queryStockLevels and
// queryDeadStock result rows (dead stock aliases its location column as
// warehouse_location).
type stockItemRow struct {
	CategoryID        int64
	CategoryName      string
	ItemID            int64
	ItemName          string
	StockQuantity     decimal.Decimal
	StockValue        decimal.Decimal
	LocationName      string
	LastPurchasedDate time.Time
	DaysInInventory   int64
}

func newStockLevelRow(r Row) stockItemRow {
	return stockItemRow{
		CategoryID:        rowInt(r, "category_id"),
		CategoryName:      rowString(r, "category_name"),
		ItemID:            rowInt(r, "item_id"),
		ItemName:          rowString(r, "item_name"),
		StockQuantity:     rowDecimal(r, "stock_quantity"),
		StockValue:        rowDecimal(r, "stock_value"),
		LocationName:      rowString(r, "locationname"),
		LastPurchasedDate: rowTime(r, "last_purchased_date"),
		DaysInInventory:   rowInt(r, "days_in_inventory"),
	}
}

func newDeadStockRow(r Row) stockItemRow {
	row := newStockLevelRow(r)
	row.LocationName = rowString(r, "warehouse_location")
	return row
}

// StockItemEntry is one item inside a category group.
type StockItemEntry struct {
	ItemID            int64           `json:"item_id"`
	ItemName          string          `json:"item_name"`
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	StockValue        decimal.Decimal `json:"stock_value"`
	LocationName      string          `json:"locationname"`
	LastPurchasedDate time.Time       `json:"last_purchased_date"`
	DaysInInventory   int64           `json:"days_in_inventory"`
}

// StockCategoryGroup is one item category with per-item detail and
// accumulated quantity/value totals.
type StockCategoryGroup struct {
	CategoryID         int64            `json:"category_id"`
	CategoryName       string           `json:"category_name"`
	TotalStockQuantity decimal.Decimal  `json:"total_stock_quantity"`
	TotalStockValue    decimal.Decimal  `json:"total_stock_value"`
	Items              []StockItemEntry `json:"items"`
}

// groupStockByCategory partitions item rows under their category in
// first-appearance order, accumulating quantity and value.
func groupStockByCategory(typed []stockItemRow) []*StockCategoryGroup {
	return groupRows(typed,
		func(r stockItemRow) int64 { return r.CategoryID },
		func(r stockItemRow) *StockCategoryGroup {
			return &StockCategoryGroup{
				CategoryID:   r.CategoryID,
				CategoryName: r.CategoryName,
				Items:        []StockItemEntry{},
			}
		},
		func(g *StockCategoryGroup, r stockItemRow) {
			g.TotalStockQuantity = g.TotalStockQuantity.Add(r.StockQuantity)
			g.TotalStockValue = g.TotalStockValue.Add(r.StockValue)
			g.Items = append(g.Items, StockItemEntry{
				ItemID:            r.ItemID,
				ItemName:          r.ItemName,
				StockQuantity:     r.StockQuantity,
				StockValue:        r.StockValue,
				LocationName:      r.LocationName,
				LastPurchasedDate: r.LastPurchasedDate,
				DaysInInventory:   r.DaysInInventory,
			})
		},
	)
}

func runStockLevels(ctx context.Context, s *inventoryReportService, p ResolvedParams) ([]any, error) {
	q := queryStockLevels
	var args []any
	if p.LocationID != 0 {
		args = append(args, p.LocationID)
		q += " WHERE st.loccode = $1"
	}
	q += queryStockLevelsTail

	rows, err := s.exec.Select(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	typed := make([]stockItemRow, len(rows))
	for i, r := range rows {
		typed[i] = newStockLevelRow(r)
	}
	return groupsAsAny(groupStockByCategory(typed)), nil
}

func runDeadStock(ctx context.Context, s *inventoryReportService, p ResolvedParams) ([]any, error) {
	rows, err := s.exec.Select(ctx, queryDeadStock, p.From, p.To)
	if err != nil {
		return nil, err
	}

	typed := make([]stockItemRow, len(rows))
	for i, r := range rows {
		typed[i] = newDeadStockRow(r)
	}
	return groupsAsAny(groupStockByCategory(typed)), nil
}
