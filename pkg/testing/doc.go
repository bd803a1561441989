// Package testing provides a component testing harness for the side-effect
// framework.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestMyChannel(t *testing.T) {
//	    tester := setest.NewComponentTesterWithT(t)
//	    tester.PumpWidget(effect.Widget(props))
//
//	    // Pump the same widget type again to update the mounted occurrence
//	    tester.PumpWidget(effect.Widget(newProps))
//
//	    // Unmount everything
//	    tester.PumpWidget(nil)
//	}
//
// PumpWidget reconciles against the mounted root: a compatible widget
// updates the existing element in place (states survive and see
// DidUpdateWidget), an incompatible one remounts.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import setest "github.com/go-drift/sideeffect/pkg/testing"
package testing
