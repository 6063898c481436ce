// Package codec provides the echo JSON serializer backed by sonic.
package codec

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// JSON is the sonic configuration used for request bodies, responses and
// stored records. It matches sonic.ConfigStd except that HTML characters
// are written as-is, so a stored record keeps the bytes the client sent.
var JSON = sonic.Config{
	EscapeHTML:       false,
	SortMapKeys:      true,
	CompactMarshaler: true,
	CopyString:       true,
	ValidateString:   true,
}.Froze()

// SonicSerializer implements echo.JSONSerializer on top of JSON.
type SonicSerializer struct {
	api sonic.API
}

var _ echo.JSONSerializer = SonicSerializer{}

func NewSonicSerializer() SonicSerializer {
	return SonicSerializer{api: JSON}
}

// Serialize writes i as JSON to the response.
func (s SonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := s.api.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize reads the request body into i. Decode failures are reported
// as 400 with the decoder error kept as the internal cause.
func (s SonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := s.api.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload").SetInternal(err)
	}
	return nil
}
