package main

import "strings"

// MatrixKind identifies which decoder matrix steers a window's bins.
type MatrixKind int

const (
	MatrixDefault MatrixKind = iota
	MatrixHorseshoe
	MatrixDolby
	MatrixQS
	MatrixSQ
)

func (k MatrixKind) String() string {
	switch k {
	case MatrixDefault:
		return "default"
	case MatrixHorseshoe:
		return "horseshoe"
	case MatrixDolby:
		return "dolby"
	case MatrixQS:
		return "qs"
	case MatrixSQ:
		return "sq"
	default:
		return "unknown"
	}
}

// parseMatrixKind resolves a -matrix flag value, including the "rm" alias
// for "qs" and the "sqexperimental" alias for "sq" (§9 Open Question b: the
// experimental variant is folded into sq rather than kept as a distinct,
// possibly-removed matrix).
func parseMatrixKind(name string) (MatrixKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "default", "":
		return MatrixDefault, nil
	case "horseshoe":
		return MatrixHorseshoe, nil
	case "dolby":
		return MatrixDolby, nil
	case "qs", "rm":
		return MatrixQS, nil
	case "sq", "sqexperimental":
		return MatrixSQ, nil
	default:
		return 0, newConfigError("unsupported -matrix %q (want default, horseshoe, dolby, qs, rm, sq, sqexperimental)", name)
	}
}

// ChannelLayout identifies the output channel count/arrangement.
type ChannelLayout int

const (
	Layout4_0 ChannelLayout = iota
	Layout5_0
	Layout5_1
)

func (l ChannelLayout) String() string {
	switch l {
	case Layout4_0:
		return "4.0"
	case Layout5_0:
		return "5.0"
	case Layout5_1:
		return "5.1"
	default:
		return "unknown"
	}
}

// HasCenter reports whether this layout carries a center channel.
func (l ChannelLayout) HasCenter() bool { return l == Layout5_0 || l == Layout5_1 }

// HasLFE reports whether this layout carries a low-frequency-effects channel.
func (l ChannelLayout) HasLFE() bool { return l == Layout5_1 }

// ChannelCount returns the number of interleaved output channels.
func (l ChannelLayout) ChannelCount() int {
	switch l {
	case Layout4_0:
		return 4
	case Layout5_0:
		return 5
	case Layout5_1:
		return 6
	default:
		return 0
	}
}

func parseChannelLayout(name string) (ChannelLayout, error) {
	switch strings.TrimSpace(name) {
	case "4", "4.0":
		return Layout4_0, nil
	case "5", "5.0":
		return Layout5_0, nil
	case "5.1", "":
		return Layout5_1, nil
	default:
		return 0, newConfigError("unsupported -channels %q (want 4, 5, or 5.1)", name)
	}
}
