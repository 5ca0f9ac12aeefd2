package main

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeStereoFloatWAV writes a minimal two-channel 32-bit float WAV file,
// independent of writeSurroundWAV (which always writes a layout's full
// channel set), purely so readWAV has a known-good stereo fixture to read
// back in tests.
func writeStereoFloatWAV(t *testing.T, path string, sampleRate int, l, r []float64) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	n := len(l)
	dataSize := uint32(n * 2 * 4)
	header := wavHeaderFloat{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     dataSize + 36,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   wavFormatFloat,
		NumChannels:   2,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * 2 * 4),
		BlockAlign:    8,
		BitsPerSample: 32,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
	if err := binary.Write(f, binary.LittleEndian, &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	buf := make([]byte, 8)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(l[i])))
		binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(r[i])))
		if _, err := f.Write(buf); err != nil {
			t.Fatalf("write frame: %v", err)
		}
	}
}

func TestReadWAVStereoFloat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stereo.wav")

	n := 100
	l := make([]float64, n)
	r := make([]float64, n)
	for i := range l {
		l[i] = math.Sin(float64(i) * 0.1)
		r[i] = math.Cos(float64(i) * 0.1)
	}
	writeStereoFloatWAV(t, path, 48000, l, r)

	stream, err := readWAV(path)
	if err != nil {
		t.Fatalf("readWAV: %v", err)
	}
	if stream.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", stream.SampleRate)
	}
	if stream.NumSamples() != n {
		t.Fatalf("NumSamples = %d, want %d", stream.NumSamples(), n)
	}
	for i := range l {
		if math.Abs(stream.L[i]-l[i]) > 1e-6 {
			t.Fatalf("L[%d] = %v, want %v", i, stream.L[i], l[i])
		}
		if math.Abs(stream.R[i]-r[i]) > 1e-6 {
			t.Fatalf("R[%d] = %v, want %v", i, stream.R[i], r[i])
		}
	}
}

func TestReadWAVRejectsMono(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mono.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	n := 10
	dataSize := uint32(n * 4)
	header := wavHeaderFloat{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     dataSize + 36,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   wavFormatFloat,
		NumChannels:   1,
		SampleRate:    48000,
		ByteRate:      48000 * 4,
		BlockAlign:    4,
		BitsPerSample: 32,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
	_ = binary.Write(f, binary.LittleEndian, &header)
	buf := make([]byte, dataSize)
	_, _ = f.Write(buf)
	f.Close()

	if _, err := readWAV(path); err == nil {
		t.Error("expected error reading a mono file")
	}
}

func TestWriteSurroundWAVRoundTripChannelCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "surround.wav")

	n := 50
	chans := make([][]float64, 6)
	for c := range chans {
		chans[c] = make([]float64, n)
		for i := range chans[c] {
			chans[c][i] = float64(c+1) * 0.01 * float64(i%10)
		}
	}
	out := &SurroundOutput{Layout: Layout5_1, SampleRate: 44100, Channels: chans}

	if err := writeSurroundWAV(path, out); err != nil {
		t.Fatalf("writeSurroundWAV: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	wantSize := int64(44 + n*6*4)
	if info.Size() != wantSize {
		t.Errorf("file size = %d, want %d", info.Size(), wantSize)
	}
}
