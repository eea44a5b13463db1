// Package dto holds the wire shapes of the streaming (vendor XML) and management (JSON) APIs.
package dto

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/ueberboese/ueberboese-api/internal/service"
)

func vendorTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(service.VendorTimeLayout)
}

// GroupRoleXML is one <groupRole> of a group document.
type GroupRoleXML struct {
	DeviceID string `xml:"deviceId"`
	Role     string `xml:"role"`
}

// GroupRequest is the body of a create-group call.
type GroupRequest struct {
	XMLName        xml.Name       `xml:"group"`
	MasterDeviceID string         `xml:"masterDeviceId"`
	Name           string         `xml:"name"`
	Roles          []GroupRoleXML `xml:"roles>groupRole"`
}

func (r *GroupRequest) ToInput(accountID string) service.CreateGroupInput {
	roles := make([]service.GroupRole, 0, len(r.Roles))
	for _, role := range r.Roles {
		roles = append(roles, service.GroupRole{DeviceID: role.DeviceID, Role: role.Role})
	}
	return service.CreateGroupInput{
		AccountID:      accountID,
		MasterDeviceID: r.MasterDeviceID,
		Name:           r.Name,
		Roles:          roles,
	}
}

type GroupResponse struct {
	XMLName        xml.Name       `xml:"group"`
	ID             string         `xml:"id,attr"`
	MasterDeviceID string         `xml:"masterDeviceId"`
	Name           string         `xml:"name"`
	Roles          []GroupRoleXML `xml:"roles>groupRole"`
}

func GroupFromService(g *service.DeviceGroup) GroupResponse {
	return GroupResponse{
		ID:             strconv.FormatInt(g.ID, 10),
		MasterDeviceID: g.MasterDeviceID,
		Name:           g.Name,
		Roles: []GroupRoleXML{
			{DeviceID: g.LeftDeviceID, Role: service.GroupRoleLeft},
			{DeviceID: g.RightDeviceID, Role: service.GroupRoleRight},
		},
	}
}

// EmptyGroupXML marks a known device that belongs to no group.
const EmptyGroupXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><group/>`

// RecentRequest is what a speaker posts when it starts playing something.
type RecentRequest struct {
	XMLName         xml.Name `xml:"recent"`
	LastPlayedAt    string   `xml:"lastplayedat"`
	SourceID        string   `xml:"sourceid"`
	Name            string   `xml:"name"`
	Location        string   `xml:"location"`
	ContentItemType string   `xml:"contentItemType"`
}

func (r *RecentRequest) ToInput(accountID, deviceID string) service.AddRecentInput {
	return service.AddRecentInput{
		AccountID:       accountID,
		DeviceID:        deviceID,
		Name:            r.Name,
		Location:        r.Location,
		SourceID:        r.SourceID,
		ContentItemType: r.ContentItemType,
		LastPlayedAt:    r.LastPlayedAt,
	}
}

type CredentialXML struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type SourceXML struct {
	ID               string        `xml:"id,attr"`
	Type             string        `xml:"type,attr"`
	CreatedOn        string        `xml:"createdOn"`
	Credential       CredentialXML `xml:"credential"`
	Name             string        `xml:"name"`
	SourceProviderID string        `xml:"sourceproviderid"`
	SourceName       string        `xml:"sourcename"`
	UpdatedOn        string        `xml:"updatedOn"`
	Username         string        `xml:"username"`
}

type RecentResponse struct {
	XMLName         xml.Name  `xml:"recent"`
	ID              string    `xml:"id,attr"`
	ContentItemType string    `xml:"contentItemType"`
	CreatedOn       string    `xml:"createdOn"`
	LastPlayedAt    string    `xml:"lastplayedat"`
	Location        string    `xml:"location"`
	Name            string    `xml:"name"`
	Source          SourceXML `xml:"source"`
	SourceID        string    `xml:"sourceid"`
	UpdatedOn       string    `xml:"updatedOn"`
}

func RecentFromService(res *service.RecentResult) RecentResponse {
	r := res.Recent
	src := res.Source
	return RecentResponse{
		ID:              r.ID,
		ContentItemType: r.ContentItemType,
		CreatedOn:       vendorTime(r.CreatedOn),
		LastPlayedAt:    r.LastPlayedAt,
		Location:        r.Location,
		Name:            r.Name,
		Source: SourceXML{
			ID:               src.ID,
			Type:             src.Type,
			CreatedOn:        vendorTime(src.CreatedOn),
			Credential:       CredentialXML{Type: src.CredentialType, Value: src.CredentialValue},
			Name:             src.Name,
			SourceProviderID: src.SourceProviderID,
			SourceName:       src.SourceName,
			UpdatedOn:        vendorTime(src.UpdatedOn),
			Username:         src.Username,
		},
		SourceID:  r.SourceID,
		UpdatedOn: vendorTime(r.UpdatedOn),
	}
}

type SourceProviderXML struct {
	ID        int    `xml:"id,attr"`
	CreatedOn string `xml:"createdOn"`
	Name      string `xml:"name"`
	UpdatedOn string `xml:"updatedOn"`
}

type SourceProvidersResponse struct {
	XMLName   xml.Name            `xml:"sourceProviders"`
	Providers []SourceProviderXML `xml:"sourceprovider"`
}

func SourceProvidersFromService(providers []service.SourceProvider) SourceProvidersResponse {
	out := SourceProvidersResponse{Providers: make([]SourceProviderXML, 0, len(providers))}
	for _, p := range providers {
		out.Providers = append(out.Providers, SourceProviderXML{
			ID:        p.ID,
			CreatedOn: vendorTime(p.CreatedOn),
			Name:      p.Name,
			UpdatedOn: vendorTime(p.UpdatedOn),
		})
	}
	return out
}

// PowerOnRequest is the <device-data> document a speaker posts on boot.
type PowerOnRequest struct {
	XMLName xml.Name `xml:"device-data"`
	Device  struct {
		ID              string `xml:"id,attr"`
		Name            string `xml:"name"`
		SerialNumber    string `xml:"serialnumber"`
		FirmwareVersion string `xml:"firmware-version"`
	} `xml:"device"`
	IPAddress string `xml:"diagnostic-data>device-landscape>ip-address"`
}
