package main

import (
	"encoding/binary"
	"io"
	"math"
	"os"
)

// wavFormatPCM / wavFormatFloat are the WAVE_FORMAT_* tags this reader
// understands, matching the "fmt " subchunk's AudioFormat field.
const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xFFFE
)

// wavFmtChunk mirrors the canonical 16-byte PCM "fmt " subchunk body.
type wavFmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// readWAV reads a RIFF/WAVE file from disk into a StereoStream, normalizing
// every sample to [-1, 1] regardless of source bit depth (§3, §6).
func readWAV(path string) (*StereoStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newIOError("failed to open input file", err)
	}
	defer f.Close()

	var riffID [4]byte
	var riffSize uint32
	var waveID [4]byte
	if err := binary.Read(f, binary.LittleEndian, &riffID); err != nil {
		return nil, newInputFormatError("failed to read RIFF header: %v", err)
	}
	if riffID != [4]byte{'R', 'I', 'F', 'F'} {
		return nil, newInputFormatError("not a RIFF file (got %q)", riffID)
	}
	if err := binary.Read(f, binary.LittleEndian, &riffSize); err != nil {
		return nil, newInputFormatError("corrupt RIFF header: %v", err)
	}
	if err := binary.Read(f, binary.LittleEndian, &waveID); err != nil {
		return nil, newInputFormatError("corrupt RIFF header: %v", err)
	}
	if waveID != [4]byte{'W', 'A', 'V', 'E'} {
		return nil, newInputFormatError("not a WAVE file (got %q)", waveID)
	}

	var fmtChunk *wavFmtChunk
	var dataBytes []byte

	for {
		var chunkID [4]byte
		var chunkSize uint32
		if err := binary.Read(f, binary.LittleEndian, &chunkID); err != nil {
			if err == io.EOF {
				break
			}
			return nil, newInputFormatError("corrupt chunk header: %v", err)
		}
		if err := binary.Read(f, binary.LittleEndian, &chunkSize); err != nil {
			return nil, newInputFormatError("corrupt chunk header: %v", err)
		}

		switch chunkID {
		case [4]byte{'f', 'm', 't', ' '}:
			var fc wavFmtChunk
			if err := binary.Read(f, binary.LittleEndian, &fc); err != nil {
				return nil, newInputFormatError("corrupt fmt chunk: %v", err)
			}
			rem := int64(chunkSize) - 16
			// WAVE_FORMAT_EXTENSIBLE keeps the real format tag in the first
			// two bytes of its sub-format GUID, which starts 8 bytes into
			// the 24-byte extension (after cbSize, valid bits, channel mask).
			if fc.AudioFormat == wavFormatExtensible && rem >= 24 {
				ext := make([]byte, 24)
				if _, err := io.ReadFull(f, ext); err != nil {
					return nil, newInputFormatError("corrupt fmt chunk extension: %v", err)
				}
				fc.AudioFormat = binary.LittleEndian.Uint16(ext[8:10])
				rem -= 24
			}
			fmtChunk = &fc
			// Skip any extension bytes not read above.
			if rem > 0 {
				if _, err := f.Seek(rem, io.SeekCurrent); err != nil {
					return nil, newInputFormatError("corrupt fmt chunk extension: %v", err)
				}
			}
		case [4]byte{'d', 'a', 't', 'a'}:
			buf := make([]byte, chunkSize)
			if _, err := io.ReadFull(f, buf); err != nil {
				return nil, newInputFormatError("corrupt data chunk: %v", err)
			}
			dataBytes = buf
		default:
			if _, err := f.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return nil, newInputFormatError("corrupt chunk %q: %v", chunkID, err)
			}
		}

		// Chunks are word-aligned; skip the pad byte for odd sizes.
		if chunkSize%2 == 1 {
			if _, err := f.Seek(1, io.SeekCurrent); err != nil {
				break
			}
		}
	}

	if fmtChunk == nil {
		return nil, newInputFormatError("missing fmt chunk")
	}
	if dataBytes == nil {
		return nil, newInputFormatError("missing data chunk")
	}
	if fmtChunk.NumChannels != 2 {
		return nil, newInputFormatError("input must be stereo, got %d channel(s)", fmtChunk.NumChannels)
	}

	decode, err := sampleDecoderFor(*fmtChunk)
	if err != nil {
		return nil, err
	}

	bytesPerFrame := int(fmtChunk.BlockAlign)
	if bytesPerFrame == 0 {
		return nil, newInputFormatError("invalid block align 0")
	}
	numFrames := len(dataBytes) / bytesPerFrame
	bytesPerSample := bytesPerFrame / 2

	stream := &StereoStream{
		SampleRate: int(fmtChunk.SampleRate),
		BitDepth:   int(fmtChunk.BitsPerSample),
		L:          make([]float64, numFrames),
		R:          make([]float64, numFrames),
	}

	for i := 0; i < numFrames; i++ {
		base := i * bytesPerFrame
		stream.L[i] = decode(dataBytes[base : base+bytesPerSample])
		stream.R[i] = decode(dataBytes[base+bytesPerSample : base+2*bytesPerSample])
	}

	return stream, nil
}

// sampleDecoderFor returns a function converting one sample's raw bytes to
// a float64 in [-1, 1], selected by format tag and bit depth.
func sampleDecoderFor(fc wavFmtChunk) (func([]byte) float64, error) {
	format := fc.AudioFormat
	if format == wavFormatExtensible {
		// readWAV replaces the EXTENSIBLE tag with the sub-format's tag
		// whenever the fmt extension is present; an EXTENSIBLE tag that
		// remains (extension too short) is decoded as integer PCM of
		// BitsPerSample.
		format = wavFormatPCM
	}

	switch {
	case format == wavFormatFloat && fc.BitsPerSample == 32:
		return func(b []byte) float64 {
			bits := binary.LittleEndian.Uint32(b)
			return float64(math.Float32frombits(bits))
		}, nil
	case format == wavFormatPCM && fc.BitsPerSample == 16:
		return func(b []byte) float64 {
			v := int16(binary.LittleEndian.Uint16(b))
			return float64(v) / 32768.0
		}, nil
	case format == wavFormatPCM && fc.BitsPerSample == 24:
		return func(b []byte) float64 {
			raw := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if raw&0x800000 != 0 {
				raw |= ^0xFFFFFF // sign-extend
			}
			return float64(raw) / 8388608.0
		}, nil
	case format == wavFormatPCM && fc.BitsPerSample == 32:
		return func(b []byte) float64 {
			v := int32(binary.LittleEndian.Uint32(b))
			return float64(v) / 2147483648.0
		}, nil
	default:
		return nil, newInputFormatError("unsupported sample format (format tag %d, %d-bit)", fc.AudioFormat, fc.BitsPerSample)
	}
}
