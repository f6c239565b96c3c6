package tracking

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Message kinds produced by DecodeMessage.
const (
	MessageIgnored = iota
	MessageFrame
	MessageDevice
)

// Message is one decoded line of the tracking stream.
type Message struct {
	Kind     int
	FrameID  int64
	Hands    []Hand
	Attached bool
}

// jsonFrame follows the field names of the sensor service's v6 JSON stream.
type jsonFrame struct {
	ID         int64           `json:"id"`
	Timestamp  int64           `json:"timestamp"`
	Hands      *[]jsonHand     `json:"hands"`
	Pointables []jsonPointable `json:"pointables"`
	Event      *jsonEvent      `json:"event"`
}

type jsonHand struct {
	ID           int        `json:"id"`
	Type         string     `json:"type"` // "left" or "right"
	PalmPosition [3]float64 `json:"palmPosition"`
	PalmNormal   [3]float64 `json:"palmNormal"`
}

type jsonPointable struct {
	ID          int        `json:"id"`
	HandID      int        `json:"handId"`
	Type        int        `json:"type"`
	MCPPosition [3]float64 `json:"mcpPosition"`
	PIPPosition [3]float64 `json:"pipPosition"`
	DIPPosition [3]float64 `json:"dipPosition"`
	TipPosition [3]float64 `json:"tipPosition"`
}

type jsonEvent struct {
	Type  string `json:"type"`
	State struct {
		Attached  bool `json:"attached"`
		Streaming bool `json:"streaming"`
	} `json:"state"`
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

// DecodeMessage parses one line of the tracking stream. Frames become
// MessageFrame with hands in stream order and fingers attached by hand id.
// Device events become MessageDevice. Anything else is ignored.
func DecodeMessage(line []byte) (Message, error) {
	var f jsonFrame
	if err := json.Unmarshal(line, &f); err != nil {
		return Message{}, fmt.Errorf("parse frame: %w", err)
	}

	if f.Event != nil {
		if f.Event.Type == "deviceEvent" {
			return Message{Kind: MessageDevice, Attached: f.Event.State.Attached}, nil
		}
		return Message{Kind: MessageIgnored}, nil
	}
	if f.Hands == nil {
		return Message{Kind: MessageIgnored}, nil
	}

	return Message{Kind: MessageFrame, FrameID: f.ID, Hands: f.toHands()}, nil
}

func (f jsonFrame) toHands() []Hand {
	hands := make([]Hand, len(*f.Hands))
	byID := make(map[int]int, len(*f.Hands))
	for i, h := range *f.Hands {
		hands[i] = h.toHand()
		byID[h.ID] = i
	}

	for _, p := range f.Pointables {
		i, ok := byID[p.HandID]
		if !ok || p.Type < 0 || p.Type >= int(NumFingers) {
			continue
		}
		hands[i].Fingers[p.Type] = Finger{
			ID:   p.ID,
			Type: FingerType(p.Type),
			MCP:  vec(p.MCPPosition),
			PIP:  vec(p.PIPPosition),
			DIP:  vec(p.DIPPosition),
			Tip:  vec(p.TipPosition),
		}
	}

	return hands
}

func (h jsonHand) toHand() Hand {
	hand := Hand{
		ID:           h.ID,
		Handedness:   Right,
		PalmPosition: vec(h.PalmPosition),
		PalmNormal:   vec(h.PalmNormal),
	}
	if h.Type == "left" {
		hand.Handedness = Left
	}
	for i := range hand.Fingers {
		hand.Fingers[i].Type = FingerType(i)
	}
	return hand
}
