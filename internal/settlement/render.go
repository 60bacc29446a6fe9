package settlement

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported statement format")

type Format string

const (
	FormatHTML Format = "html"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	case "":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/html; charset=utf-8"
	}
}

// Filename is the attachment name for a rendered statement.
func (f Format) Filename(statementNumber string) string {
	return fmt.Sprintf("statement-%s.%s", statementNumber, f)
}

// Render dispatches to the renderer for format.
func Render(data StatementData, format Format) ([]byte, error) {
	switch format {
	case FormatHTML:
		s, err := RenderHTML(data)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case FormatCSV:
		return []byte(RenderCSV(data)), nil
	case FormatXLSX:
		return RenderXLSX(data)
	case FormatPDF:
		return RenderPDF(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
