package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// corruptedAudioBytes is a payload that is valid multipart content but
// not decodable audio, for exercising transcription failure paths.
var corruptedAudioBytes = []byte("This is not audio data, just random bytes for testing error handling")

// sineWAV renders a mono 16-bit PCM WAV file containing a 440 Hz sine
// wave. The result is a complete file image, header included.
func sineWAV(duration time.Duration, sampleRate int) []byte {
	frames := int(float64(sampleRate) * duration.Seconds())
	dataSize := uint32(2 * frames)

	var buf bytes.Buffer
	buf.Grow(44 + int(dataSize))

	u32 := func(v uint32) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	u16 := func(v uint16) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	buf.WriteString("RIFF")
	u32(36 + dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	u32(16)
	u16(1) // PCM
	u16(1) // mono
	u32(uint32(sampleRate))
	u32(uint32(sampleRate * 2)) // byte rate: one 2-byte sample per frame
	u16(2)                      // block align
	u16(16)                     // bits per sample

	buf.WriteString("data")
	u32(dataSize)
	for i := 0; i < frames; i++ {
		sample := math.Sin(2 * math.Pi * 440 * float64(i) / float64(sampleRate))
		_ = binary.Write(&buf, binary.LittleEndian, int16(sample*32767))
	}

	return buf.Bytes()
}
