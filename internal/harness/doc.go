// Package harness runs path calculation scenarios as executable tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: maze_shortcut
//	description: "What this scenario validates"
//	moveset: cardinal        # or octile, or a .cue file relative to the scenario
//	config:
//	  cost_inf: 1000
//	  timeout: 500ms
//	plane:
//	  - OX_XG
//	  - _X_X_
//	  - _____
//	cases:
//	  - name: shortcut
//	    start: "0,0"
//	    goal: "4,0"
//	    expect:
//	      found: true
//	      cost: 8
//	      length: 9
//	      drawing:
//	        - "@X_X%"
//	        - "vX_X^"
//	        - "v>>>>"
//
// Every expect field except found is optional.
//
// # Drawings
//
// Draw renders a path over the plane: the start is '@', the goal is '%', and
// every cell in between shows the direction of the move that entered it.
//
// # Determinism
//
// Each scenario owns one calculator, reset between cases, and the search
// has no randomness, so drawings are stable and can be compared against
// golden files with AssertGolden.
//
// # Usage
//
//	scenarios, err := harness.LoadDir("testdata/scenarios")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := harness.RunAll(ctx, scenarios)
//	for _, r := range results {
//	    if !r.Pass {
//	        for _, e := range r.Errors {
//	            log.Println(e)
//	        }
//	    }
//	}
package harness
