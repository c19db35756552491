// Package portaudio provides an audio.Device backed by a blocking PortAudio
// output stream.
package portaudio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/Mohammad-Palla/sherlock-game/core/audio"
)

type Client struct {
	sampleRate int
	bufferSize int
	stream     *portaudio.Stream
	out        []float32

	mu   sync.Mutex
	done chan struct{}
	wg   sync.WaitGroup
}

func NewClient(sampleRate, bufferSize int) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	if sampleRate <= 0 {
		sampleRate = audio.DefaultSampleRate
	}

	out := make([]float32, bufferSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), bufferSize, out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	return &Client{
		sampleRate: sampleRate,
		bufferSize: bufferSize,
		stream:     stream,
		out:        out,
	}, nil
}

func (c *Client) Start(render func(out []float32)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return nil
	}

	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	done := make(chan struct{})
	c.done = done
	c.wg.Add(1)
	go c.writeLoop(done, render)
	return nil
}

func (c *Client) writeLoop(done <-chan struct{}, render func(out []float32)) {
	defer c.wg.Done()
	for {
		select {
		case <-done:
			return
		default:
			render(c.out)
			if err := c.stream.Write(); err != nil {
				logger.Warn("failed to write to portaudio stream", "error", err)
			}
		}
	}
}

func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done == nil {
		return nil
	}

	close(c.done)
	c.done = nil
	c.wg.Wait()

	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop portaudio stream: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if err := c.Stop(); err != nil {
		logger.Warn("failed to stop portaudio stream", "error", err)
	}
	if err := c.stream.Close(); err != nil {
		return fmt.Errorf("failed to close portaudio stream: %w", err)
	}
	return portaudio.Terminate()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: c.sampleRate,
		Format:     audio.EncodingFloat32,
	}
}
