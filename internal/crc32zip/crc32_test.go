package crc32zip

import "testing"

func TestChecksumKnownVectors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want uint32
	}{
		{"empty", []byte{}, 0x00000000},
		{"hello", []byte("Hello"), 0xF7D18982},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Checksum(c.data)
			if got != c.want {
				t.Fatalf("got %#08x, want %#08x", got, c.want)
			}
		})
	}
}

func TestChecksumIsDeterministic(t *testing.T) {
	data := []byte("the quick brown fox")
	if Checksum(data) != Checksum(append([]byte(nil), data...)) {
		t.Fatal("checksum is not deterministic over equal inputs")
	}
}
