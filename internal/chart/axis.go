package chart

import "time"

// priceScale is the padded linear mapping from price to pixel Y, computed
// once over the active sample window.
type priceScale struct {
	min    float64 // padded lower bound
	max    float64 // padded upper bound
	height float64
}

// newPriceScale scans the window once for min/max and pads the span so the
// line never touches the top or bottom edge. The padding floor keeps a
// near-flat window from collapsing to a zero span.
func newPriceScale(samples []PriceSample, padding, height float64) priceScale {
	mn, mx := samples[0].Price, samples[0].Price
	for _, s := range samples[1:] {
		if s.Price < mn {
			mn = s.Price
		}
		if s.Price > mx {
			mx = s.Price
		}
	}
	pad := (mx - mn) * padding
	if pad < mx*0.002 {
		pad = mx * 0.002
	}
	return priceScale{min: mn - pad, max: mx + pad, height: height}
}

// y maps a price into [0, height], inverted because pixel Y grows downward.
// A zero-variance window maps everything to the vertical center.
func (s priceScale) y(price float64) float64 {
	if s.max <= s.min {
		return s.height / 2
	}
	y := (1 - (price-s.min)/(s.max-s.min)) * s.height
	return clamp(y, 0, s.height)
}

// pastX maps one sample into [0, width*splitRatio] under the given strategy.
func pastX(sample PriceSample, index, total int, strat Strategy, rng TimeRange, vp Viewport, now time.Time) float64 {
	pastW := vp.Width * vp.SplitRatio
	var frac float64
	switch strat {
	case StrategyTimeOfDay:
		et := easternWall(sample.Timestamp)
		m := float64(et.Hour()*60+et.Minute()) + float64(et.Second())/60
		frac = (m - preMarketOpenMin) / fullSessionMinutes
	case StrategyOrdinal:
		if total <= 1 {
			// A lone sample is the latest one; it sits at the split.
			return pastW
		}
		frac = float64(index) / float64(total-1)
	case StrategyTimestamp:
		dur := rng.windowDuration(now)
		if dur <= 0 {
			return pastW
		}
		start := now.Add(-dur)
		frac = float64(sample.Timestamp.Sub(start)) / float64(dur)
	}
	return clamp(frac, 0, 1) * pastW
}

// futureX maps an event into [width*splitRatio, width]. Elapsed time from
// now is shifted by a fixed forward buffer before normalizing against the
// future window, so an event only hours away still clears the split line.
func futureX(ev FutureEvent, vp Viewport, cfg Config, now time.Time) float64 {
	splitX := vp.Width * vp.SplitRatio
	futureW := vp.Width - splitX
	if cfg.FutureWindow <= 0 {
		return splitX
	}
	elapsed := ev.Timestamp.Sub(now) + cfg.FutureBuffer
	frac := clamp(float64(elapsed)/float64(cfg.FutureWindow), 0, 1)
	return splitX + frac*futureW
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
