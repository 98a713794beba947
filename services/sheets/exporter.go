package sheetsvc

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/nossauesc/agenda/core"
)

// Header is the first row written to an empty sheet.
var Header = []interface{}{"id", "createdAt", "uid", "owner", "category", "title", "description", "banner"}

// Exporter appends stored records to a Google Sheet for moderators to review.
type Exporter struct {
	service     *sheets.Service
	spreadsheet string
	sheetName   string
}

func NewExporter(ctx context.Context, credentialsPath, spreadsheetID, sheetName string) (*Exporter, error) {
	credBytes, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading credentials file")
	}
	config, err := google.JWTConfigFromJSON(credBytes, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, errors.Wrap(err, "parsing credentials")
	}
	service, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, errors.Wrap(err, "creating sheets service")
	}
	return &Exporter{
		service:     service,
		spreadsheet: spreadsheetID,
		sheetName:   sheetName,
	}, nil
}

// Export appends the header and one row per document. It returns the number of exported documents.
func (e *Exporter) Export(ctx context.Context, docs []core.Document) (int, error) {
	values := make([][]interface{}, 0, len(docs)+1)
	values = append(values, Header)
	for _, doc := range docs {
		values = append(values, Row(doc))
	}

	_, err := e.service.Spreadsheets.Values.Append(
		e.spreadsheet,
		e.sheetName,
		&sheets.ValueRange{Values: values},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return 0, errors.Wrap(err, "appending rows")
	}
	return len(docs), nil
}

// Row flattens a stored record into the columns of Header. Missing values are empty cells.
func Row(doc core.Document) []interface{} {
	var owner interface{} = ""
	if conn, ok := doc.Data["connection"].(map[string]interface{}); ok {
		owner = cell(conn["name"])
	}
	return []interface{}{
		doc.ID,
		cell(doc.Data["createdAt"]),
		cell(doc.Data["uid"]),
		owner,
		cell(doc.Data["categoryId"]),
		cell(doc.Data["title"]),
		cell(doc.Data["description"]),
		cell(doc.Data["banner"]),
	}
}

func cell(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case string, bool, float64, int, int64:
		return val
	default:
		return fmt.Sprint(val)
	}
}
