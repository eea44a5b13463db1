package service

import (
	"fmt"

	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
)

const (
	ReasonUpstreamUnavailable     = "UPSTREAM_UNAVAILABLE"
	ReasonAccountCacheReadFailed  = "ACCOUNT_CACHE_READ_FAILED"
	ReasonAccountCacheWriteFailed = "ACCOUNT_CACHE_WRITE_FAILED"
	ReasonAccountParseFailed      = "ACCOUNT_PARSE_FAILED"
	ReasonDeviceAlreadyGrouped    = "DEVICE_ALREADY_GROUPED"
	ReasonDeviceUnknown           = "DEVICE_UNKNOWN"
	ReasonInvalidGroupRequest     = "INVALID_GROUP_REQUEST"

	VendorStatusDeviceAlreadyGrouped = "4041"
	VendorStatusDeviceUnknown        = "4012"
)

var (
	ErrUpstreamUnavailable = infraerrors.BadGateway(ReasonUpstreamUnavailable, "upstream unavailable")
	ErrAccountCacheRead    = infraerrors.BadGateway(ReasonAccountCacheReadFailed, "stored account data could not be read")
	ErrAccountParse        = infraerrors.BadGateway(ReasonAccountParseFailed, "upstream account data could not be parsed")

	ErrDeviceUnknown = infraerrors.BadRequest(ReasonDeviceUnknown, "Device does not exist").
		WithMetadata(map[string]string{infraerrors.MetadataVendorStatusCode: VendorStatusDeviceUnknown})
)

// ErrDeviceAlreadyGrouped names the first device of a create request that is already paired.
func ErrDeviceAlreadyGrouped(deviceID string) error {
	return infraerrors.BadRequest(ReasonDeviceAlreadyGrouped, fmt.Sprintf("Device %s already belongs to a group", deviceID)).
		WithMetadata(map[string]string{infraerrors.MetadataVendorStatusCode: VendorStatusDeviceAlreadyGrouped})
}
