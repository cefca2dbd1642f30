// Package testing provides an engine testing harness for the hooks engine.
//
// # Quick Start
//
// Create a tester, run the first render, then pump frames:
//
//	func TestCounter(t *testing.T) {
//	    tester := hookstest.NewEngineTesterWithT(t, Counter)
//	    if err := tester.Init(); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    tester.Dispatch(func() { clickIncrement() })
//	    if err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if got := tester.Sink().Last(); got != "<p>1</p>" {
//	        t.Errorf("last commit = %q", got)
//	    }
//	}
//
// # Golden Transcripts
//
// Record observations in a Transcript and compare them with a golden file:
//
//	var tr hookstest.Transcript
//	tr.Commits(tester.Sink())
//	hookstest.MatchesGolden(t, "counter", []byte(tr.String()))
//
// Update golden files with:
//
//	go test ./... -update
//
// # Time
//
// Each Pump advances the fake clock by FrameDuration, so frame callbacks see
// deterministic timestamps.
package testing
