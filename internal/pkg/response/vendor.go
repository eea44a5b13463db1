package response

import (
	"encoding/xml"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
)

const (
	VendorContentType = "application/vnd.bose.streaming-v1.2+xml"
	XMLHeader         = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "DNT,X-CustomHeader,Keep-Alive,User-Agent,X-Requested-With,If-Modified-Since,Cache-Control,Content-Type,Authorization"
)

// VendorStatusBody is the error document speakers understand.
type VendorStatusBody struct {
	XMLName    xml.Name `xml:"status"`
	Message    string   `xml:"message"`
	StatusCode string   `xml:"status-code"`
}

// StreamingCORS sets the fixed CORS headers the vendor apps expect.
func StreamingCORS(c *gin.Context) {
	StreamingCORSExposing(c, "Authorization")
}

func StreamingCORSExposing(c *gin.Context, expose string) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	h.Set("Access-Control-Expose-Headers", expose)
}

// VendorRaw writes an already serialized vendor document.
func VendorRaw(c *gin.Context, status int, body []byte) {
	c.Data(status, VendorContentType, body)
}

// VendorXML marshals v with the standalone XML declaration.
func VendorXML(c *gin.Context, status int, v any) {
	body, err := MarshalVendorXML(v)
	if err != nil {
		_ = c.Error(err)
		VendorStatus(c, http.StatusInternalServerError, infraerrors.UnknownMessage, "500")
		return
	}
	VendorRaw(c, status, body)
}

func MarshalVendorXML(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(XMLHeader)+len(body))
	out = append(out, XMLHeader...)
	return append(out, body...), nil
}

// VendorStatus writes a <status> error document.
func VendorStatus(c *gin.Context, status int, message, statusCode string) {
	body, _ := MarshalVendorXML(VendorStatusBody{Message: message, StatusCode: statusCode})
	VendorRaw(c, status, body)
}

// VendorErrorFrom renders err as a <status> document. The vendor status code comes
// from the error metadata and defaults to the HTTP status.
func VendorErrorFrom(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	appErr := infraerrors.FromError(err)
	statusCode := appErr.Metadata[infraerrors.MetadataVendorStatusCode]
	if statusCode == "" {
		statusCode = strconv.Itoa(appErr.Code)
	}
	message := appErr.Message
	if message == "" {
		message = infraerrors.UnknownMessage
	}
	VendorStatus(c, appErr.Code, message, statusCode)
	return true
}
