package audio

import "fmt"

// SavedState is the migratable state of the device: per-direction
// alternate setting, mute, and linear volume. Everything else (buffer
// contents, backend voices) is rebuilt on restore.
type SavedState struct {
	OutAltset uint32   `toml:"out_altset"`
	OutMute   bool     `toml:"out_mute"`
	OutVol    [2]uint8 `toml:"out_vol"`
	InAltset  uint32   `toml:"in_altset"`
	InMute    bool     `toml:"in_mute"`
	InVol     uint8    `toml:"in_vol"`
}

// Save captures the device's migratable state.
func (d *Device) Save() SavedState {
	return SavedState{
		OutAltset: uint32(d.out.altset),
		OutMute:   d.out.mute,
		OutVol:    d.out.vol,
		InAltset:  uint32(d.in.altset),
		InMute:    d.in.mute,
		InVol:     d.in.vol,
	}
}

// Restore applies a saved state to a realized device: volume and mute are
// pushed to the backend and the alternate settings are re-applied through
// the normal transition, reactivating a stream that was on.
func (d *Device) Restore(st SavedState) error {
	if st.OutAltset > AltsetOn || st.InAltset > AltsetOn {
		return fmt.Errorf("saved altset out=%d in=%d: out of range",
			st.OutAltset, st.InAltset)
	}

	d.out.mute = st.OutMute
	d.out.vol = st.OutVol
	d.in.mute = st.InMute
	d.in.vol = st.InVol
	d.out.pushVolume()
	d.in.pushVolume()

	if err := d.out.setAltset(uint8(st.OutAltset)); err != nil {
		return err
	}
	return d.in.setAltset(uint8(st.InAltset))
}
