package handlers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"clarimed/middleware"

	"github.com/gin-gonic/gin"
)

const (
	MaxDurationSeconds = 60              // 1 minute maximum
	MaxFileSize        = 5 * 1024 * 1024 // 5MB (conservative buffer)
	AllowedExtension   = ".wav"
)

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}

	var header waveHeader
	buf := bytes.NewReader(data[:44])
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a WAV file")
	}
	return &header, nil
}

// durationSeconds derives the recording length from the data chunk size.
func (h *waveHeader) durationSeconds() float64 {
	if h.ByteRate == 0 {
		return 0
	}
	return float64(h.DataSize) / float64(h.ByteRate)
}

// TranscribeHandler validates a WAV upload locally (type, size, duration)
// and forwards it to the upstream speech-to-text endpoint. The engine
// itself is upstream's concern.
func (hb *HandlerBundle) TranscribeHandler(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file is required",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != AllowedExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", AllowedExtension, ext),
		})
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to read audio file",
			"details": err.Error(),
		})
		return
	}
	if len(audio) > MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file too large",
			"details": fmt.Sprintf("maximum size is %d bytes", MaxFileSize),
		})
		return
	}

	wav, err := parseWaveHeader(audio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid audio file",
			"details": err.Error(),
		})
		return
	}
	if wav.durationSeconds() > MaxDurationSeconds {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "recording too long",
			"details": fmt.Sprintf("maximum duration is %d seconds", MaxDurationSeconds),
		})
		return
	}

	text, err := hb.Upstream.Transcribe(c.Request.Context(), middleware.UpstreamToken(c), header.Filename, audio)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
