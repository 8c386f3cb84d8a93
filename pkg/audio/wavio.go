package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	wav "github.com/youpy/go-wav"
)

const readChunkSamples = 2048

// Decode parses a WAV stream into Data. Multi-channel audio keeps the
// first channel only; the channel count is preserved so format validation
// can reject it downstream.
func Decode(r io.Reader) (*Data, error) {
	reader := wav.NewReader(r)

	format, err := reader.Format()
	if err != nil {
		return nil, NewFormatError(ErrCodeMalformedHeader, "failed to read WAV header", err)
	}
	if format.AudioFormat != wav.AudioFormatPCM {
		return nil, NewFormatError(ErrCodeNotPCM,
			fmt.Sprintf("unsupported WAV audio format %d, want linear PCM", format.AudioFormat), nil)
	}

	data := &Data{
		SampleRate: int(format.SampleRate),
		Channels:   int(format.NumChannels),
		BitDepth:   int(format.BitsPerSample),
	}

	for {
		samples, err := reader.ReadSamples(readChunkSamples)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewFormatError(ErrCodeUnreadableData, "failed to read WAV samples", err)
		}
		for _, sample := range samples {
			value := reader.IntValue(sample, 0)
			data.PCM = append(data.PCM, FloatFromPCM(value, data.BitDepth))
		}
	}

	return data, nil
}

// Encode writes Data as a mono 16-bit PCM WAV stream.
func Encode(w io.Writer, data *Data) error {
	writer := wav.NewWriter(w, uint32(len(data.PCM)), 1, uint32(data.SampleRate), 16)

	samples := make([]wav.Sample, len(data.PCM))
	for i, v := range data.PCM {
		samples[i] = wav.Sample{Values: [2]int{PCM16FromFloat(v), 0}}
	}
	if err := writer.WriteSamples(samples); err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	return nil
}

// ReadFile loads a WAV file.
func ReadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open waveform file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// WriteFile renders the WAV fully in memory and writes it in one
// operation, so a failed encode leaves no partial file behind.
func WriteFile(path string, data *Data) error {
	var buf bytes.Buffer
	if err := Encode(&buf, data); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write waveform file: %w", err)
	}
	return nil
}
