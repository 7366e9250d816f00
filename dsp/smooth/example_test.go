package smooth_test

import (
	"fmt"

	"github.com/cwbudde/algo-utility/dsp/smooth"
)

func ExampleLinear() {
	s := smooth.NewLinear(1000, 0.004, 0) // 4-sample ramp
	s.SetTarget(1)

	for range 5 {
		fmt.Printf("%.2f ", s.Next())
	}
	fmt.Println()

	// Output:
	// 0.25 0.50 0.75 1.00 1.00
}
