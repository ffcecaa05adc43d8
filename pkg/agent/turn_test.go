package agent

import (
	"context"
	"testing"
	"time"
)

type commit struct {
	transcript string
	forced     bool
}

func TestTurnDetectorPunctuationCommit(t *testing.T) {
	commits := make(chan commit, 1)
	d := NewTurnDetector(TurnConfig{}, func(transcript string, forced bool) {
		commits <- commit{transcript, forced}
	})

	d.AddTranscript("add two loaves of")
	d.AddTranscript("bread please.")

	select {
	case c := <-commits:
		if c.transcript != "add two loaves of bread please." {
			t.Errorf("transcript = %q", c.transcript)
		}
		if c.forced {
			t.Error("punctuation commit reported as forced")
		}
	case <-time.After(time.Second):
		t.Fatal("no commit")
	}
}

func TestTurnDetectorSingleCommitPerTurn(t *testing.T) {
	commits := make(chan commit, 2)
	d := NewTurnDetector(TurnConfig{}, func(transcript string, forced bool) {
		commits <- commit{transcript, forced}
	})

	d.AddTranscript("done.")
	<-commits

	// After a commit further deltas are ignored until Reset.
	d.AddTranscript("more words.")
	select {
	case c := <-commits:
		t.Fatalf("unexpected second commit %q", c.transcript)
	case <-time.After(100 * time.Millisecond):
	}

	d.Reset()
	d.AddTranscript("next turn.")
	select {
	case c := <-commits:
		if c.transcript != "next turn." {
			t.Errorf("transcript = %q", c.transcript)
		}
	case <-time.After(time.Second):
		t.Fatal("no commit after reset")
	}
}

func TestTurnDetectorTimeoutCommit(t *testing.T) {
	commits := make(chan commit, 1)
	d := NewTurnDetector(TurnConfig{NoActivityTimeout: 50 * time.Millisecond}, func(transcript string, forced bool) {
		commits <- commit{transcript, forced}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	// No trailing punctuation: only the timeout can commit this.
	d.AddTranscript("umm two bread")

	select {
	case c := <-commits:
		if !c.forced {
			t.Error("timeout commit not reported as forced")
		}
		if c.transcript != "umm two bread" {
			t.Errorf("transcript = %q", c.transcript)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no forced commit")
	}
}

func TestTurnDetectorMinWords(t *testing.T) {
	commits := make(chan commit, 1)
	d := NewTurnDetector(TurnConfig{MinWords: 3}, func(transcript string, forced bool) {
		commits <- commit{transcript, forced}
	})

	d.AddTranscript("yes.")
	select {
	case <-commits:
		t.Fatal("committed below the word minimum")
	case <-time.After(100 * time.Millisecond):
	}

	d.AddTranscript("place the order.")
	select {
	case <-commits:
	case <-time.After(time.Second):
		t.Fatal("no commit once minimum reached")
	}
}
