package vcp

import (
	"fmt"
	"strconv"
)

// FeatureCode identifies a VCP feature.
type FeatureCode uint8

const (
	// RestoreFactoryDefaults resets all settings (write-only).
	RestoreFactoryDefaults FeatureCode = 0x04

	// Luminance is the backlight / brightness level.
	Luminance FeatureCode = 0x10

	// Contrast is the contrast level.
	Contrast FeatureCode = 0x12

	// ColorPreset selects a color temperature preset.
	ColorPreset FeatureCode = 0x14

	// RedGain is the video gain for the red channel.
	RedGain FeatureCode = 0x16

	// GreenGain is the video gain for the green channel.
	GreenGain FeatureCode = 0x18

	// BlueGain is the video gain for the blue channel.
	BlueGain FeatureCode = 0x1A

	// InputSource selects the active video input.
	InputSource FeatureCode = 0x60

	// AudioVolume is the speaker volume.
	AudioVolume FeatureCode = 0x62

	// LUTTable is the gamma lookup table.
	LUTTable FeatureCode = 0x73

	// OSDLanguage selects the on-screen display language.
	OSDLanguage FeatureCode = 0xCC

	// PowerMode is the display power state.
	PowerMode FeatureCode = 0xD6

	// DisplayMode selects a picture mode.
	DisplayMode FeatureCode = 0xDC

	// VersionCode reports the supported MCCS version.
	VersionCode FeatureCode = 0xDF
)

// Power mode values for PowerMode.
const (
	PowerOn      uint8 = 0x01
	PowerStandby uint8 = 0x02
	PowerSuspend uint8 = 0x03
	PowerOff     uint8 = 0x04
	PowerOffHard uint8 = 0x05
)

var featureNames = map[FeatureCode]string{
	RestoreFactoryDefaults: "RestoreFactoryDefaults",
	Luminance:              "Luminance",
	Contrast:               "Contrast",
	ColorPreset:            "ColorPreset",
	RedGain:                "RedGain",
	GreenGain:              "GreenGain",
	BlueGain:               "BlueGain",
	InputSource:            "InputSource",
	AudioVolume:            "AudioVolume",
	LUTTable:               "LUTTable",
	OSDLanguage:            "OSDLanguage",
	PowerMode:              "PowerMode",
	DisplayMode:            "DisplayMode",
	VersionCode:            "Version",
}

// String returns the feature name, or the code in hex for unnamed features.
func (c FeatureCode) String() string {
	if name, ok := featureNames[c]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint8(c))
}

// ParseFeatureCode parses a feature by name (case-sensitive) or as a
// hexadecimal code with an optional 0x prefix.
func ParseFeatureCode(s string) (FeatureCode, error) {
	for code, name := range featureNames {
		if name == s {
			return code, nil
		}
	}
	v, err := strconv.ParseUint(trimHexPrefix(s), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid feature code %q", s)
	}
	return FeatureCode(v), nil
}

func trimHexPrefix(s string) string {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}

// Kind distinguishes the value shapes a feature can carry.
type Kind uint8

const (
	// KindContinuous is a level with a maximum.
	KindContinuous Kind = 0
	// KindNonContinuous is a single enumerated byte.
	KindNonContinuous Kind = 1
	// KindTable is an opaque byte sequence.
	KindTable Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindContinuous:
		return "CONTINUOUS"
	case KindNonContinuous:
		return "NON_CONTINUOUS"
	case KindTable:
		return "TABLE"
	default:
		return "UNKNOWN"
	}
}

// builtinKinds lists the non-continuous and table features defined by MCCS
// that are commonly implemented. Unlisted codes default to continuous.
var builtinKinds = map[FeatureCode]Kind{
	RestoreFactoryDefaults: KindNonContinuous,
	ColorPreset:            KindNonContinuous,
	InputSource:            KindNonContinuous,
	LUTTable:               KindTable,
	OSDLanguage:            KindNonContinuous,
	PowerMode:              KindNonContinuous,
	DisplayMode:            KindNonContinuous,
}

// KindOf returns the built-in kind for a feature code.
func KindOf(code FeatureCode) Kind {
	if k, ok := builtinKinds[code]; ok {
		return k
	}
	return KindContinuous
}
