// Package testing drives applications and widgets without a platform.
//
// A Tester runs an application on a fake clock with a manual task
// executor, so every step of the update loop happens on the test goroutine:
//
//	func TestCounter(t *testing.T) {
//	    tester := mvutest.NewTester(t, counterApp())
//
//	    if err := tester.Tap(mvutest.ByText("+")); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if got := tester.State().Value; got != 1 {
//	        t.Errorf("value = %d, want 1", got)
//	    }
//	}
//
// Tasks spawned by Update run when the tester settles, which every gesture
// does. Subscriptions run on real goroutines; use WaitFor to observe the
// messages they produce.
//
// # Animation
//
// Frames are only produced when a widget asks for one. Advance moves the
// clock and renders a frame if one became due; PumpAndSettle renders frames
// until nothing is animating:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.PumpAndSettle(time.Second)
//
// # Snapshots
//
// CaptureSnapshot records the laid out widgets and the drawn primitives.
// MatchesFile compares it to a golden file; set MVU_UPDATE_SNAPSHOTS=1 to
// rewrite the files.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import mvutest "github.com/go-drift/mvu/pkg/testing"
package testing
