package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// wavHeaderSize is the fixed size of the canonical PCM header we emit:
// RIFF chunk descriptor, "fmt " sub-chunk and "data" sub-chunk preamble.
const wavHeaderSize = 44

// EncodeWAV wraps raw little-endian signed 16-bit PCM samples in a
// RIFF/WAVE container.
func EncodeWAV(pcm []byte, sampleRate, channels int) []byte {
	out := make([]byte, wavHeaderSize+len(pcm))

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(sampleRate*channels*2))
	binary.LittleEndian.PutUint16(out[32:34], uint16(channels*2))
	binary.LittleEndian.PutUint16(out[34:36], 16)

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[wavHeaderSize:], pcm)

	return out
}

// DecodeWAV parses a container produced by EncodeWAV back into raw PCM
// bytes plus its declared sample rate and channel count.
func DecodeWAV(data []byte) (pcm []byte, sampleRate, channels int, err error) {
	if len(data) < wavHeaderSize {
		return nil, 0, 0, fmt.Errorf("wav: container too short (%d bytes)", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, 0, fmt.Errorf("wav: missing RIFF/WAVE markers")
	}
	if string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		return nil, 0, 0, fmt.Errorf("wav: unexpected chunk layout")
	}
	if format := binary.LittleEndian.Uint16(data[20:22]); format != 1 {
		return nil, 0, 0, fmt.Errorf("wav: unsupported audio format %d", format)
	}

	channels = int(binary.LittleEndian.Uint16(data[22:24]))
	sampleRate = int(binary.LittleEndian.Uint32(data[24:28]))
	dataLen := int(binary.LittleEndian.Uint32(data[40:44]))
	if dataLen != len(data)-wavHeaderSize {
		return nil, 0, 0, fmt.Errorf("wav: declared data length %d, have %d bytes", dataLen, len(data)-wavHeaderSize)
	}

	return data[wavHeaderSize:], sampleRate, channels, nil
}

// PCM16ToFloat32 converts interleaved signed 16-bit samples to float32
// in [-1, 1).
func PCM16ToFloat32(pcm []byte) []float32 {
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
		samples[i] = float32(v) / 32768.0
	}
	return samples
}

// Float32ToPCM16 converts float samples in nominal [-1, 1] to
// little-endian signed 16-bit bytes. Values are clamped, positive
// samples scale by 32767 and negative by 32768.
func Float32ToPCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		f := float64(s)
		f = math.Max(-1, math.Min(1, f))
		var v int16
		if f < 0 {
			v = int16(f * 32768)
		} else {
			v = int16(f * 32767)
		}
		binary.LittleEndian.PutUint16(out[i*2:i*2+2], uint16(v))
	}
	return out
}

// ResampleLinear converts mono float samples from one rate to another
// using linear interpolation. Good enough for voice upsampling into the
// mix timeline; no anti-alias filtering is applied.
func ResampleLinear(samples []float32, fromRate, toRate int) []float32 {
	if fromRate == toRate || len(samples) == 0 {
		out := make([]float32, len(samples))
		copy(out, samples)
		return out
	}

	ratio := float64(fromRate) / float64(toRate)
	outLen := int(math.Ceil(float64(len(samples)) * float64(toRate) / float64(fromRate)))
	out := make([]float32, outLen)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}
	return out
}
