package usb

import (
	"testing"
)

func TestParseSetupPacket(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    SetupPacket
		wantErr bool
	}{
		{
			name: "GET_DESCRIPTOR device",
			data: []byte{0x80, 0x06, 0x00, 0x01, 0x00, 0x00, 0x12, 0x00},
			want: SetupPacket{
				RequestType: 0x80,
				Request:     0x06,
				Value:       0x0100,
				Index:       0x0000,
				Length:      18,
			},
		},
		{
			name: "SET_INTERFACE alt 1",
			data: []byte{0x01, 0x0B, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00},
			want: SetupPacket{
				RequestType: 0x01,
				Request:     0x0B,
				Value:       1,
				Index:       1,
				Length:      0,
			},
		},
		{
			name: "class GET_CUR mute on output feature unit",
			data: []byte{0xA1, 0x81, 0x00, 0x01, 0x00, 0x02, 0x01, 0x00},
			want: SetupPacket{
				RequestType: 0xA1,
				Request:     0x81,
				Value:       0x0100,
				Index:       0x0200,
				Length:      1,
			},
		},
		{
			name:    "too short",
			data:    []byte{0x80, 0x06, 0x00},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SetupPacket
			err := ParseSetupPacket(tt.data, &got)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSetupPacket() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParseSetupPacket() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSetupPacketMarshalTo(t *testing.T) {
	pkt := SetupPacket{
		RequestType: 0xA1,
		Request:     0x81,
		Value:       0x0201,
		Index:       0x0200,
		Length:      2,
	}

	var buf [SetupPacketSize]byte
	n := pkt.MarshalTo(buf[:])
	if n != SetupPacketSize {
		t.Errorf("MarshalTo() length = %d, want %d", n, SetupPacketSize)
	}

	// Parse it back
	var parsed SetupPacket
	err := ParseSetupPacket(buf[:], &parsed)
	if err != nil {
		t.Fatalf("ParseSetupPacket() error = %v", err)
	}
	if parsed != pkt {
		t.Errorf("round-trip failed: got %+v, want %+v", parsed, pkt)
	}
}

func TestSetupPacketPredicates(t *testing.T) {
	tests := []struct {
		name        string
		requestType uint8
		wantD2H     bool
		wantClass   bool
		wantIface   bool
	}{
		{"standard device OUT", 0x00, false, false, false},
		{"standard device IN", 0x80, true, false, false},
		{"class interface IN", 0xA1, true, true, true},
		{"class interface OUT", 0x21, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SetupPacket{RequestType: tt.requestType}
			if got := s.IsDeviceToHost(); got != tt.wantD2H {
				t.Errorf("IsDeviceToHost() = %v, want %v", got, tt.wantD2H)
			}
			if got := s.IsClass(); got != tt.wantClass {
				t.Errorf("IsClass() = %v, want %v", got, tt.wantClass)
			}
			if got := s.IsInterfaceRecipient(); got != tt.wantIface {
				t.Errorf("IsInterfaceRecipient() = %v, want %v", got, tt.wantIface)
			}
		})
	}
}

func TestRequestKey(t *testing.T) {
	var s SetupPacket
	ClassGetSetup(&s, 0x81, 0x01, 0, 0x0200, 1)
	if got := s.RequestKey(); got != ClassInterfaceRequest|0x81 {
		t.Errorf("RequestKey() = 0x%04X, want 0x%04X", got, ClassInterfaceRequest|0x81)
	}

	ClassSetSetup(&s, 0x01, 0x02, 1, 0x0500, 2)
	if got := s.RequestKey(); got != ClassInterfaceOutRequest|0x01 {
		t.Errorf("RequestKey() = 0x%04X, want 0x%04X", got, ClassInterfaceOutRequest|0x01)
	}
}

func TestClassSetupBuilders(t *testing.T) {
	var s SetupPacket
	ClassGetSetup(&s, 0x82, 0x02, 1, 0x0200, 2)
	if s.Value != 0x0201 {
		t.Errorf("wValue = 0x%04X, want 0x0201", s.Value)
	}
	if s.Index != 0x0200 {
		t.Errorf("wIndex = 0x%04X, want 0x0200", s.Index)
	}
	if !s.IsDeviceToHost() || !s.IsClass() || !s.IsInterfaceRecipient() {
		t.Errorf("ClassGetSetup built wrong bmRequestType 0x%02X", s.RequestType)
	}
}
