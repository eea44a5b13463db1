package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"go.uber.org/zap"
)

const (
	GroupRoleLeft  = "LEFT"
	GroupRoleRight = "RIGHT"
)

// DeviceGroup pairs two speakers of one account as a stereo set.
type DeviceGroup struct {
	ID             int64
	AccountID      string
	MasterDeviceID string
	Name           string
	LeftDeviceID   string
	RightDeviceID  string
	CreatedOn      time.Time
	UpdatedOn      time.Time
	Version        int64
}

// Members returns the group's left and right device ids.
func (g *DeviceGroup) Members() []string {
	return []string{g.LeftDeviceID, g.RightDeviceID}
}

// GroupRole assigns a device to one side of a group.
type GroupRole struct {
	DeviceID string
	Role     string
}

type CreateGroupInput struct {
	AccountID      string
	MasterDeviceID string
	Name           string
	Roles          []GroupRole
}

// DeviceGroupRepository persists device groups.
type DeviceGroupRepository interface {
	// FindByMember returns the group of accountID whose left or right device is deviceID, or nil, nil.
	FindByMember(ctx context.Context, accountID, deviceID string) (*DeviceGroup, error)
	// Create inserts group and sets its ID.
	Create(ctx context.Context, group *DeviceGroup) error
}

type DeviceGroupService struct {
	groups  DeviceGroupRepository
	devices DeviceRepository
	now     func() time.Time
}

func NewDeviceGroupService(groups DeviceGroupRepository, devices DeviceRepository) *DeviceGroupService {
	return &DeviceGroupService{groups: groups, devices: devices, now: time.Now}
}

// CreateGroup stores a new group. It fails with ErrDeviceAlreadyGrouped for the
// first role device that already belongs to a group of the same account, and
// stores nothing in that case.
func (s *DeviceGroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*DeviceGroup, error) {
	left, right, err := splitRoles(in.Roles)
	if err != nil {
		return nil, err
	}

	for _, role := range in.Roles {
		deviceID := strings.TrimSpace(role.DeviceID)
		existing, err := s.groups.FindByMember(ctx, in.AccountID, deviceID)
		if err != nil {
			return nil, fmt.Errorf("lookup group of device %s: %w", deviceID, err)
		}
		if existing != nil {
			logger.L().With(
				zap.String("component", "service.device_group"),
				zap.String("account_id", in.AccountID),
				zap.String("device_id", deviceID),
				zap.Int64("group_id", existing.ID),
			).Info("device_group.already_grouped")
			return nil, ErrDeviceAlreadyGrouped(deviceID)
		}
	}

	now := s.now().UTC()
	group := &DeviceGroup{
		AccountID:      in.AccountID,
		MasterDeviceID: in.MasterDeviceID,
		Name:           in.Name,
		LeftDeviceID:   left,
		RightDeviceID:  right,
		CreatedOn:      now,
		UpdatedOn:      now,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

// GetGroupByDeviceID returns the device's group, or nil when the device is known
// but ungrouped. An unknown device fails with ErrDeviceUnknown.
func (s *DeviceGroupService) GetGroupByDeviceID(ctx context.Context, accountID, deviceID string) (*DeviceGroup, error) {
	device, err := s.devices.GetByID(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("lookup device %s: %w", deviceID, err)
	}
	if device == nil {
		return nil, ErrDeviceUnknown
	}
	return s.groups.FindByMember(ctx, accountID, deviceID)
}

func splitRoles(roles []GroupRole) (left, right string, err error) {
	if len(roles) != 2 {
		return "", "", invalidGroup(fmt.Sprintf("a group needs exactly 2 roles, got %d", len(roles)))
	}
	for _, r := range roles {
		id := strings.TrimSpace(r.DeviceID)
		if id == "" {
			return "", "", invalidGroup("role without deviceId")
		}
		switch strings.ToUpper(strings.TrimSpace(r.Role)) {
		case GroupRoleLeft:
			left = id
		case GroupRoleRight:
			right = id
		default:
			return "", "", invalidGroup(fmt.Sprintf("unknown role %q", r.Role))
		}
	}
	if left == "" || right == "" {
		return "", "", invalidGroup("a group needs one LEFT and one RIGHT device")
	}
	if left == right {
		return "", "", invalidGroup("LEFT and RIGHT must be different devices")
	}
	return left, right, nil
}

func invalidGroup(message string) error {
	return infraerrors.BadRequest(ReasonInvalidGroupRequest, message)
}
