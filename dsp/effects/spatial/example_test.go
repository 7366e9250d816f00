package spatial_test

import (
	"fmt"

	"github.com/cwbudde/algo-utility/dsp/effects/spatial"
)

func ExampleStereoField_ProcessStereo() {
	f, err := spatial.NewStereoField(48000, spatial.WithFieldWidth(200))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	outL, outR := f.ProcessStereo(0.8, 0.2)

	fmt.Printf("L=%.4f R=%.4f\n", outL, outR)
	// Output:
	// L=1.1000 R=-0.1000
}

func ExampleMidSideGains() {
	for _, b := range []float64{-100, 0, 100} {
		mid, side := spatial.MidSideGains(b)
		fmt.Printf("balance=%4.0f mid=%.2f side=%.2f\n", b, mid, side)
	}
	// Output:
	// balance=-100 mid=0.50 side=0.00
	// balance=   0 mid=0.50 side=0.50
	// balance= 100 mid=0.00 side=0.50
}

func ExamplePanGains() {
	for _, p := range []float64{-1, 0, 1} {
		l, r := spatial.PanGains(p)
		fmt.Printf("pan=%2.0f L=%.4f R=%.4f\n", p, l, r)
	}
	// Output:
	// pan=-1 L=1.0000 R=0.0000
	// pan= 0 L=0.7071 R=0.7071
	// pan= 1 L=0.0000 R=1.0000
}

func ExampleBassMono() {
	b, err := spatial.NewBassMono(48000, 256, spatial.WithBassMonoFreq(200))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("freq=%.0f Hz listening=%v\n", b.Freq(), b.Listening())
	// Output:
	// freq=200 Hz listening=false
}
