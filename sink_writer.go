package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// wavHeaderFloat mirrors the canonical 44-byte PCM WAV header, adjusted
// for a 32-bit IEEE float data chunk.
type wavHeaderFloat struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// writeSurroundWAV writes a SurroundOutput as a 32-bit float WAV file,
// atomically: the file is assembled under a uuid-suffixed temp name in the
// destination directory, then renamed into place. No partial output is
// ever visible at the final path (§7).
func writeSurroundWAV(path string, out *SurroundOutput) (err error) {
	dir := filepath.Dir(path)
	tempPath := filepath.Join(dir, fmt.Sprintf(".%s.surroundup-%s.tmp", filepath.Base(path), uuid.New().String()))

	f, err := os.Create(tempPath)
	if err != nil {
		return newIOError("failed to create temp output file", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tempPath)
		}
	}()

	numChannels := out.Layout.ChannelCount()
	bytesPerSample := 4
	dataSize := uint32(out.NumSamples() * numChannels * bytesPerSample)

	header := wavHeaderFloat{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     dataSize + 36,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   wavFormatFloat,
		NumChannels:   uint16(numChannels),
		SampleRate:    uint32(out.SampleRate),
		ByteRate:      uint32(out.SampleRate * numChannels * bytesPerSample),
		BlockAlign:    uint16(numChannels * bytesPerSample),
		BitsPerSample: 32,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	if err = binary.Write(f, binary.LittleEndian, &header); err != nil {
		return newIOError("failed to write WAV header", err)
	}

	buf := make([]byte, 4*numChannels)
	for i := 0; i < out.NumSamples(); i++ {
		for c := 0; c < numChannels; c++ {
			bits := math.Float32bits(float32(out.Channels[c][i]))
			binary.LittleEndian.PutUint32(buf[c*4:c*4+4], bits)
		}
		if _, err = f.Write(buf); err != nil {
			return newIOError("failed to write sample frame", err)
		}
	}

	if err = f.Close(); err != nil {
		return newIOError("failed to close temp output file", err)
	}

	if err = os.Rename(tempPath, path); err != nil {
		return newIOError("failed to finalize output file", err)
	}

	return nil
}

// SurroundOutput is the final assembled interleaved-by-channel output
// (§3), built once from the ChannelBuffers after every window has
// committed.
type SurroundOutput struct {
	Layout     ChannelLayout
	SampleRate int
	Channels   [][]float64 // one slice per destination channel, in layout order
}

func (o *SurroundOutput) NumSamples() int {
	if len(o.Channels) == 0 {
		return 0
	}
	return len(o.Channels[0])
}
