package bus

import (
	"testing"
)

func TestBuilder(t *testing.T) {
	t.Run("MixedWidths", func(t *testing.T) {
		config, err := NewBuilder().
			WithMonoInput("Mono").
			WithAudioInput("Stereo", 2).
			WithAudioOutput("Quad", 4).
			Build()

		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		if got := config.GetBusInfo(MediaTypeAudio, DirectionInput, 1).ChannelCount; got != 2 {
			t.Errorf("Expected 2 channels for stereo, got %d", got)
		}
		if got := config.ChannelCount(DirectionInput); got != 3 {
			t.Errorf("Expected 3 input channels, got %d", got)
		}
		if got := config.ChannelCount(DirectionOutput); got != 4 {
			t.Errorf("Expected 4 output channels, got %d", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		config, err := NewBuilder().Build()
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if got := config.GetBusCount(MediaTypeAudio, DirectionOutput); got != 0 {
			t.Errorf("Expected no output buses, got %d", got)
		}
	})

	t.Run("Inactive", func(t *testing.T) {
		config := NewBuilder().
			WithMonoOutput("Out 1").
			WithMonoOutput("Out 2").
			SetBusActive(DirectionOutput, 1, false).
			MustBuild()

		if got := config.ChannelCount(DirectionOutput); got != 1 {
			t.Errorf("Expected 1 active output channel, got %d", got)
		}
	})

	t.Run("InvalidChannelCount", func(t *testing.T) {
		_, err := NewBuilder().WithAudioOutput("Out", 0).Build()
		if err == nil {
			t.Error("Expected error for zero channel bus")
		}
		_, err = NewBuilder().WithAudioOutput("Out", MaxChannelsPerBus+1).Build()
		if err == nil {
			t.Error("Expected error for oversized bus")
		}
	})

	t.Run("SetMissingBus", func(t *testing.T) {
		_, err := NewBuilder().
			WithMonoOutput("Out").
			SetBusActive(DirectionInput, 3, true).
			Build()
		if err == nil {
			t.Error("Expected error for missing bus")
		}
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic")
			}
		}()
		NewBuilder().WithAudioInput("In", -1).MustBuild()
	})
}
