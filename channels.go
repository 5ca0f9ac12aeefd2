package main

// destChannel identifies one destination channel slot, independent of its
// position in a particular layout's output ordering.
type destChannel int

const (
	chFL destChannel = iota
	chFR
	chC
	chRL
	chRR
	chLFE
)

// surroundChannelOrder gives the on-disk channel order for a layout (§3,
// §6): 4.0 is FL, FR, RL, RR; 5.0 is FL, FR, C, RL, RR; 5.1 is FL, FR, C,
// LFE, RL, RR — LFE sits between center and the rear pair, matching the
// conventional WAVE_FORMAT_EXTENSIBLE channel mask ordering.
func surroundChannelOrder(layout ChannelLayout) []destChannel {
	order := []destChannel{chFL, chFR}
	if layout.HasCenter() {
		order = append(order, chC)
	}
	if layout.HasLFE() {
		order = append(order, chLFE)
	}
	order = append(order, chRL, chRR)
	return order
}
