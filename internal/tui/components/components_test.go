package components

import (
	"strings"
	"testing"
	"time"

	"github.com/allbin/go-gsend"
	"github.com/allbin/go-gsend/stream"
)

func TestPortTable(t *testing.T) {
	ports := []*gsend.PortInfo{
		{Name: "ttyUSB0", VendorID: "0403", ProductID: "6001", Manufacturer: "FTDI", Product: "FT232R USB UART"},
		{Name: "ttyS0", Description: "16550A"},
	}

	view := PortTable(ports, 100)
	for _, want := range []string{"ttyUSB0", "USB Serial", "0403:6001", "FTDI FT232R USB UART", "ttyS0", "Standard Serial", "16550A"} {
		if !strings.Contains(view, want) {
			t.Errorf("PortTable() missing %q:\n%s", want, view)
		}
	}
}

func TestPortType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ttyUSB0", "USB Serial"},
		{"cu.usbserial-10", "USB Serial"},
		{"ttyACM0", "USB CDC/ACM"},
		{"ttyAMA0", "ARM Serial"},
		{"ttymxc1", "i.MX Serial"},
		{"ttyS3", "Standard Serial"},
		{"rfcomm0", "Serial Port"},
	}

	for _, tt := range tests {
		if got := PortType(tt.name); got != tt.want {
			t.Errorf("PortType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestJournalOneRowPerCommand(t *testing.T) {
	j := NewJournal(80, 20)
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cmd := stream.NewCommand(1, "G28")

	j.Record(stream.Event{Kind: stream.EventSent, Command: cmd}, at)
	j.Record(stream.Event{Kind: stream.EventWritten, Command: cmd}, at)
	j.Record(stream.Event{Kind: stream.EventAck, Command: cmd, Ack: stream.Classify("ok")}, at)

	entries := j.Entries()
	if len(entries) != 1 {
		t.Fatalf("journal has %d entries, want 1", len(entries))
	}
	if entries[0].Status != EntryOK || entries[0].Command != "G28" {
		t.Errorf("entry = %+v", entries[0])
	}
}
