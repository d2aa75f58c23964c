package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	uidAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	uidLen      = 8

	keyEmail = "user_email"
	keyName  = "user_name"
	keyPhoto = "user_photo"

	keyDeviceMode = "device-mode"

	mobileBreakpoint = 768
)

var ErrNoProfile = errors.New("no profile")

type Profile struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// NewUID draws a short id from an alphabet without look-alike characters.
func NewUID() string {
	var b strings.Builder
	b.Grow(uidLen)
	for i := 0; i < uidLen; i++ {
		b.WriteByte(uidAlphabet[rand.IntN(len(uidAlphabet))])
	}
	return b.String()
}

func ValidUID(uid string) bool {
	if len(uid) != uidLen {
		return false
	}
	for i := 0; i < len(uid); i++ {
		if !strings.ContainsRune(uidAlphabet, rune(uid[i])) {
			return false
		}
	}
	return true
}

func ProfileFor(uid string) Profile {
	return Profile{
		UID:   uid,
		Email: fmt.Sprintf("user%s@steamshop.local", uid),
		Name:  "Пользователь " + uid,
		Photo: "https://api.dicebear.com/7.x/avataaars/svg?seed=" + uid,
	}
}

func SaveProfile(ctx context.Context, st PrefStore, p Profile) error {
	for _, kv := range [][2]string{{keyEmail, p.Email}, {keyName, p.Name}, {keyPhoto, p.Photo}} {
		if err := st.Set(ctx, p.UID, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// LoadProfile returns ErrNoProfile when the user never logged in or has
// logged out since.
func LoadProfile(ctx context.Context, st PrefStore, uid string) (Profile, error) {
	email, ok, err := st.Get(ctx, uid, keyEmail)
	if err != nil {
		return Profile{}, err
	}
	if !ok {
		return Profile{}, ErrNoProfile
	}

	p := Profile{UID: uid, Email: email}
	if p.Name, _, err = st.Get(ctx, uid, keyName); err != nil {
		return Profile{}, err
	}
	if p.Photo, _, err = st.Get(ctx, uid, keyPhoto); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func DeleteProfile(ctx context.Context, st PrefStore, uid string) error {
	return st.Delete(ctx, uid, keyEmail, keyName, keyPhoto)
}

type DeviceMode string

const (
	DeviceAuto    DeviceMode = "auto"
	DeviceMobile  DeviceMode = "mobile"
	DeviceDesktop DeviceMode = "desktop"
)

func ParseDeviceMode(s string) (DeviceMode, bool) {
	switch m := DeviceMode(s); m {
	case DeviceAuto, DeviceMobile, DeviceDesktop:
		return m, true
	default:
		return "", false
	}
}

// Mobile resolves the layout for a viewport width. Auto switches below the
// 768px breakpoint; a zero width under auto means unknown and renders desktop.
func (m DeviceMode) Mobile(width int) bool {
	switch m {
	case DeviceMobile:
		return true
	case DeviceDesktop:
		return false
	default:
		return width > 0 && width < mobileBreakpoint
	}
}

func LoadDeviceMode(ctx context.Context, st PrefStore, uid string) (DeviceMode, error) {
	v, ok, err := st.Get(ctx, uid, keyDeviceMode)
	if err != nil {
		return "", err
	}
	m, valid := ParseDeviceMode(v)
	if !ok || !valid {
		return DeviceAuto, nil
	}
	return m, nil
}

func SaveDeviceMode(ctx context.Context, st PrefStore, uid string, m DeviceMode) error {
	return st.Set(ctx, uid, keyDeviceMode, string(m))
}
