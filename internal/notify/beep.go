package notify

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// BeepPlayer plays a WAV cue through the system speaker. The clip is decoded
// once and the speaker is opened on first use.
type BeepPlayer struct {
	mu      sync.Mutex
	data    []byte
	buffer  *beep.Buffer
	loadErr error
}

// NewBeepPlayer creates a player for WAV data.
func NewBeepPlayer(data []byte) *BeepPlayer {
	return &BeepPlayer{data: data}
}

// Play starts the clip from the beginning and returns without waiting.
func (player *BeepPlayer) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if player.buffer == nil && player.loadErr == nil {
		player.loadErr = player.load()
	}
	if player.loadErr != nil {
		return player.loadErr
	}

	speaker.Clear()
	speaker.Play(player.buffer.Streamer(0, player.buffer.Len()))
	return nil
}

func (player *BeepPlayer) load() error {
	buffer, format, err := decodeWAV(player.data)
	if err != nil {
		return err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	player.buffer = buffer
	return nil
}

func decodeWAV(data []byte) (*beep.Buffer, beep.Format, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode cue: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, beep.Format{}, fmt.Errorf("read cue: %w", err)
	}
	return buffer, format, nil
}
