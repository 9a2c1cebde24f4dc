package token

import (
	"fmt"
	"io"
)

// Service type markers on the wire.
const (
	ServiceTypeRtc  uint16 = 1
	ServiceTypeRtm  uint16 = 2
	ServiceTypeChat uint16 = 5
)

// RTC privileges.
const (
	PrivilegeJoinChannel  uint16 = 1
	PrivilegePublishAudio uint16 = 2
	PrivilegePublishVideo uint16 = 3
	PrivilegePublishData  uint16 = 4
)

// RTM privileges.
const (
	PrivilegeLogin uint16 = 1
)

// Chat privileges.
const (
	PrivilegeChatUser uint16 = 1
	PrivilegeChatApp  uint16 = 2
)

// Service is one privileged capability grant embedded in a token. Each
// service packs its type marker, its privilege map and any service-specific
// fields.
type Service interface {
	ServiceType() uint16
	Pack(w io.Writer) error
}

// baseService carries the privilege map shared by all service kinds.
type baseService struct {
	privileges map[uint16]uint32
}

func newBaseService() baseService {
	return baseService{privileges: make(map[uint16]uint32)}
}

// AddPrivilege grants a privilege for expireSeconds from token issue.
func (s *baseService) AddPrivilege(privilege uint16, expireSeconds uint32) {
	s.privileges[privilege] = expireSeconds
}

// Privileges returns the privilege map (privilege id -> expire seconds).
func (s *baseService) Privileges() map[uint16]uint32 {
	return s.privileges
}

func (s *baseService) packWithType(w io.Writer, serviceType uint16) error {
	if err := packUint16(w, serviceType); err != nil {
		return err
	}
	return packPrivileges(w, s.privileges)
}

// RtcService grants channel-scoped RTC privileges to one uid.
type RtcService struct {
	baseService
	ChannelName string
	UID         string
}

// NewRtcService creates an RTC service for the channel/uid pair. An empty uid
// means "any uid" and is accepted by the verifier as a wildcard.
func NewRtcService(channelName, uid string) *RtcService {
	return &RtcService{baseService: newBaseService(), ChannelName: channelName, UID: uid}
}

// ServiceType implements Service.
func (s *RtcService) ServiceType() uint16 { return ServiceTypeRtc }

// Pack implements Service.
func (s *RtcService) Pack(w io.Writer) error {
	if err := s.packWithType(w, ServiceTypeRtc); err != nil {
		return err
	}
	if err := packString(w, s.ChannelName); err != nil {
		return err
	}
	return packString(w, s.UID)
}

// RtmService grants RTM login to one user id.
type RtmService struct {
	baseService
	UserID string
}

// NewRtmService creates an RTM service for the user id.
func NewRtmService(userID string) *RtmService {
	return &RtmService{baseService: newBaseService(), UserID: userID}
}

// ServiceType implements Service.
func (s *RtmService) ServiceType() uint16 { return ServiceTypeRtm }

// Pack implements Service.
func (s *RtmService) Pack(w io.Writer) error {
	if err := s.packWithType(w, ServiceTypeRtm); err != nil {
		return err
	}
	return packString(w, s.UserID)
}

// ChatService grants Chat privileges to one user id.
type ChatService struct {
	baseService
	UserID string
}

// NewChatService creates a Chat service for the user id.
func NewChatService(userID string) *ChatService {
	return &ChatService{baseService: newBaseService(), UserID: userID}
}

// ServiceType implements Service.
func (s *ChatService) ServiceType() uint16 { return ServiceTypeChat }

// Pack implements Service.
func (s *ChatService) Pack(w io.Writer) error {
	if err := s.packWithType(w, ServiceTypeChat); err != nil {
		return err
	}
	return packString(w, s.UserID)
}

// unpackService reads one service starting at its type marker.
func unpackService(r io.Reader) (Service, error) {
	serviceType, err := unpackUint16(r)
	if err != nil {
		return nil, err
	}
	privileges, err := unpackPrivileges(r)
	if err != nil {
		return nil, err
	}
	switch serviceType {
	case ServiceTypeRtc:
		channelName, err := unpackString(r)
		if err != nil {
			return nil, err
		}
		uid, err := unpackString(r)
		if err != nil {
			return nil, err
		}
		return &RtcService{baseService: baseService{privileges: privileges}, ChannelName: channelName, UID: uid}, nil
	case ServiceTypeRtm:
		userID, err := unpackString(r)
		if err != nil {
			return nil, err
		}
		return &RtmService{baseService: baseService{privileges: privileges}, UserID: userID}, nil
	case ServiceTypeChat:
		userID, err := unpackString(r)
		if err != nil {
			return nil, err
		}
		return &ChatService{baseService: baseService{privileges: privileges}, UserID: userID}, nil
	default:
		return nil, fmt.Errorf("unknown service type %d", serviceType)
	}
}
