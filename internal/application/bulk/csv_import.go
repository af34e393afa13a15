package bulk

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	csvimport "github.com/dishankgupta/milk-subs-sub005/internal/infrastructure/import"
)

// maxImportRows bounds a CSV import to the same batch size as a JSON
// submission
const maxImportRows = 500

// ImportResult reports a CSV import. A file with row issues is never
// partially applied: either Issues is set and nothing was submitted,
// or Submit holds the per-row outcome of the whole batch.
type ImportResult struct {
	TotalRows int                  `json:"total_rows"`
	Invalid   int                  `json:"invalid"`
	Issues    []csvimport.RowError `json:"issues,omitempty"`
	Submit    *SubmitResult        `json:"submit,omitempty"`
}

// ImportSalesCSV reads a sale batch from a CSV file and submits it.
// Expected columns: product_code, type, quantity; optional:
// customer_id, unit_price, sale_date, notes.
func (s *Service) ImportSalesCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, err := s.readImportFile(r, []string{"product_code", "type", "quantity"})
	if err != nil {
		return nil, err
	}

	codes := newProductCodeIndex(s.productRepo)
	requests := make([]SaleRowRequest, 0, len(rows))
	collector := newIssueCollector()

	for _, row := range rows {
		req := SaleRowRequest{Notes: row.Get("notes"), SaleDate: row.Get("sale_date")}
		valid := true

		product := collector.resolveProduct(ctx, codes, row)
		if product == nil {
			valid = false
		} else {
			req.ProductID = product.ID
		}

		saleType := strings.ToLower(row.Get("type"))
		switch saleType {
		case "cash", "credit", "qr":
			req.Type = saleType
		default:
			collector.add(row.Line, "type", "must be cash, credit or qr")
			valid = false
		}

		if qty, ok := collector.decimalField(row, "quantity", true); ok {
			req.Quantity = qty
		} else {
			valid = false
		}
		if price, ok := collector.optionalDecimalField(row, "unit_price"); !ok {
			valid = false
		} else if price != nil {
			req.UnitPrice = price
		}
		if id, ok := collector.optionalUUIDField(row, "customer_id"); !ok {
			valid = false
		} else if id != nil {
			req.CustomerID = id
		}
		if !collector.dateField(row, "sale_date", false) {
			valid = false
		}

		if valid {
			requests = append(requests, req)
		}
	}

	if result := collector.result(len(rows)); result != nil {
		return result, nil
	}

	submit, err := s.SubmitSales(ctx, SubmitSalesRequest{Rows: requests})
	if err != nil {
		return nil, err
	}
	s.logger.Info("sales csv imported",
		zap.Int("rows", len(rows)),
		zap.Int("submitted", submit.Submitted),
		zap.Int("failed", submit.Failed))
	return &ImportResult{TotalRows: len(rows), Submit: submit}, nil
}

// ImportModificationsCSV reads a modification batch from a CSV file
// and submits it. Expected columns: customer_id, product_code, type,
// start_date, end_date; optional: quantity_change, reason.
func (s *Service) ImportModificationsCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, err := s.readImportFile(r, []string{"customer_id", "product_code", "type", "start_date", "end_date"})
	if err != nil {
		return nil, err
	}

	codes := newProductCodeIndex(s.productRepo)
	requests := make([]ModificationRowRequest, 0, len(rows))
	collector := newIssueCollector()

	for _, row := range rows {
		req := ModificationRowRequest{
			StartDate: row.Get("start_date"),
			EndDate:   row.Get("end_date"),
			Reason:    row.Get("reason"),
		}
		valid := true

		product := collector.resolveProduct(ctx, codes, row)
		if product == nil {
			valid = false
		} else {
			req.ProductID = product.ID
		}

		modType := strings.ToLower(row.Get("type"))
		switch modType {
		case "skip", "increase", "decrease":
			req.Type = modType
		default:
			collector.add(row.Line, "type", "must be skip, increase or decrease")
			valid = false
		}

		if id, ok := collector.optionalUUIDField(row, "customer_id"); !ok {
			valid = false
		} else if id == nil {
			collector.add(row.Line, "customer_id", "is required")
			valid = false
		} else {
			req.CustomerID = *id
		}

		if change, ok := collector.optionalDecimalField(row, "quantity_change"); !ok {
			valid = false
		} else if change != nil {
			req.QuantityChange = change
		}

		if !collector.dateField(row, "start_date", true) {
			valid = false
		}
		if !collector.dateField(row, "end_date", true) {
			valid = false
		}

		if valid {
			requests = append(requests, req)
		}
	}

	if result := collector.result(len(rows)); result != nil {
		return result, nil
	}

	submit, err := s.SubmitModifications(ctx, SubmitModificationsRequest{Rows: requests})
	if err != nil {
		return nil, err
	}
	s.logger.Info("modifications csv imported",
		zap.Int("rows", len(rows)),
		zap.Int("submitted", submit.Submitted),
		zap.Int("failed", submit.Failed))
	return &ImportResult{TotalRows: len(rows), Submit: submit}, nil
}

// readImportFile parses the CSV stream and enforces file-level rules
func (s *Service) readImportFile(r io.Reader, required []string) ([]csvimport.Row, error) {
	reader, err := csvimport.NewReader(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CSV", err.Error())
	}
	if missing := reader.RequireColumns(required...); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_CSV", "Missing required columns: "+strings.Join(missing, ", "))
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CSV", err.Error())
	}
	if len(rows) == 0 {
		return nil, shared.NewDomainError("EMPTY_IMPORT", "File has no data rows")
	}
	if len(rows) > maxImportRows {
		return nil, shared.NewDomainError("IMPORT_TOO_LARGE", "File exceeds the 500 row batch limit")
	}
	return rows, nil
}

// productCodeIndex resolves product codes lazily, once per code
type productCodeIndex struct {
	repo  catalog.ProductRepository
	found map[string]*catalog.Product
}

func newProductCodeIndex(repo catalog.ProductRepository) *productCodeIndex {
	return &productCodeIndex{
		repo:  repo,
		found: make(map[string]*catalog.Product),
	}
}

func (idx *productCodeIndex) lookup(ctx context.Context, code string) *catalog.Product {
	key := strings.ToUpper(code)
	if product, ok := idx.found[key]; ok {
		return product
	}
	product, err := idx.repo.FindByCode(ctx, key)
	if err != nil {
		product = nil
	}
	idx.found[key] = product
	return product
}

// issueCollector gathers row-level issues during conversion
type issueCollector struct {
	issues      []csvimport.RowError
	invalidRows map[int]bool
}

func newIssueCollector() *issueCollector {
	return &issueCollector{invalidRows: make(map[int]bool)}
}

func (c *issueCollector) add(line int, column, message string) {
	c.issues = append(c.issues, csvimport.RowError{Line: line, Column: column, Message: message})
	c.invalidRows[line] = true
}

func (c *issueCollector) resolveProduct(ctx context.Context, codes *productCodeIndex, row csvimport.Row) *catalog.Product {
	code := row.Get("product_code")
	if code == "" {
		c.add(row.Line, "product_code", "is required")
		return nil
	}
	product := codes.lookup(ctx, code)
	if product == nil {
		c.add(row.Line, "product_code", "unknown product code")
	}
	return product
}

func (c *issueCollector) decimalField(row csvimport.Row, column string, required bool) (decimal.Decimal, bool) {
	value := row.Get(column)
	if value == "" {
		if required {
			c.add(row.Line, column, "is required")
			return decimal.Zero, false
		}
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		c.add(row.Line, column, "must be a number")
		return decimal.Zero, false
	}
	return d, true
}

// optionalDecimalField returns (nil, true) when the field is blank
func (c *issueCollector) optionalDecimalField(row csvimport.Row, column string) (*decimal.Decimal, bool) {
	value := row.Get(column)
	if value == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		c.add(row.Line, column, "must be a number")
		return nil, false
	}
	return &d, true
}

// optionalUUIDField returns (nil, true) when the field is blank
func (c *issueCollector) optionalUUIDField(row csvimport.Row, column string) (*uuid.UUID, bool) {
	value := row.Get(column)
	if value == "" {
		return nil, true
	}
	id, err := uuid.Parse(value)
	if err != nil {
		c.add(row.Line, column, "must be a UUID")
		return nil, false
	}
	return &id, true
}

func (c *issueCollector) dateField(row csvimport.Row, column string, required bool) bool {
	value := row.Get(column)
	if value == "" {
		if required {
			c.add(row.Line, column, "is required")
			return false
		}
		return true
	}
	if _, err := format.ParseDate(value); err != nil {
		c.add(row.Line, column, "must be in YYYY-MM-DD format")
		return false
	}
	return true
}

// result returns the rejection result when any issues were collected
func (c *issueCollector) result(totalRows int) *ImportResult {
	if len(c.issues) == 0 {
		return nil
	}
	return &ImportResult{
		TotalRows: totalRows,
		Invalid:   len(c.invalidRows),
		Issues:    c.issues,
	}
}
