// Package capacity simulates an hourly PV/battery/diesel dispatch strategy
// and searches for the least-cost plant sizing that meets demand, ported
// from a Python differential-evolution-based capacity optimizer.
package capacity

import "math"

// Physical/economic constants carried over unchanged from the original
// model. They aren't user-tunable inputs — the original hardcodes them at
// module scope, and so do we, as package constants rather than a config
// struct nothing in this codebase would ever override.
const (
	// SimulationYears is the planning horizon the cost objective
	// annualizes capacity cost against.
	SimulationYears = 15

	// RoundTripEfficiency is the battery's round-trip efficiency; charge
	// and discharge each apply its square root, so one full charge-then-
	// discharge cycle loses (1-RTE) of the energy.
	RoundTripEfficiency = 0.95

	// MaxDepthOfDischarge bounds how far the battery may be drawn down;
	// 0.9 means at most 90% of nameplate capacity is usable.
	MaxDepthOfDischarge = 0.9

	// BatteryInitialSOCFraction is the battery's state of charge, as a
	// fraction of its capacity, at the start of the simulated horizon.
	BatteryInitialSOCFraction = 0.5

	pvCostPerKW      = 720.0
	batteryCostPerKWh = 140.0
	dieselCostPerKW  = 261.0
	dieselFuelCostPerKWh = 0.2

	hoursPerYear = 8760
)

var chargeEfficiency = math.Sqrt(RoundTripEfficiency)

// Plant is a candidate (or final) capacity sizing for the three resources
// the optimizer searches over.
type Plant struct {
	PVKW       float64 `json:"pvKW"`
	BatteryKWh float64 `json:"batteryKWh"`
	DieselKW   float64 `json:"dieselKW"`
}

// DispatchTrace is the hourly simulation output for a given Plant against
// a load and PV-output-factor series: how much of demand each resource
// served, and the battery's state of charge.
type DispatchTrace struct {
	EBattery   []float64 `json:"eBattery"`
	EDiesel    []float64 `json:"eDiesel"`
	CBattery   []float64 `json:"cBattery"`
	EPV        []float64 `json:"ePV"`
	ELoad      []float64 `json:"eLoad"`
}

// Simulate runs the hourly energy-balance dispatch for plant against load
// (kW demand per hour) and pvFactor (PV output per installed kW, per
// hour — i.e. a capacity factor time series), returning the trace. load
// and pvFactor must be the same length; mismatched lengths are a caller
// bug, not a runtime condition this function tries to recover from.
func (plant Plant) Simulate(load, pvFactor []float64) DispatchTrace {
	n := len(load)
	trace := DispatchTrace{
		EBattery: make([]float64, n),
		EDiesel:  make([]float64, n),
		CBattery: make([]float64, n),
		EPV:      make([]float64, n),
		ELoad:    load,
	}

	soc := BatteryInitialSOCFraction * plant.BatteryKWh
	maxDischargeFloor := (1 - MaxDepthOfDischarge) * plant.BatteryKWh

	for t := 0; t < n; t++ {
		pvOutput := plant.PVKW * pvFactor[t]
		trace.EPV[t] = pvOutput
		surplus := pvOutput - load[t]

		if surplus > 0 {
			soc += chargeEfficiency * surplus
			if soc > plant.BatteryKWh {
				soc = plant.BatteryKWh
			}
		} else {
			available := soc - maxDischargeFloor
			discharged := math.Min(available, -surplus/chargeEfficiency)
			if discharged > 0 {
				soc -= discharged
				finalDischarge := discharged * chargeEfficiency
				if finalDischarge < 0 {
					finalDischarge = 0
				}
				trace.EBattery[t] = finalDischarge
				surplus += finalDischarge
			}
		}

		if surplus < -0.0000001 {
			trace.EDiesel[t] = math.Min(-surplus, plant.DieselKW)
		}
		trace.CBattery[t] = soc
	}

	return trace
}

// DemandConstraint returns the worst (most negative) instant across the
// trace where served energy fell short of load; values >= 0 mean demand
// was met at every hour.
func DemandConstraint(trace DispatchTrace) float64 {
	worst := math.Inf(1)
	for t := range trace.ELoad {
		served := trace.EBattery[t] + trace.EDiesel[t] + trace.EPV[t]
		margin := served - trace.ELoad[t]
		if margin < worst {
			worst = margin
		}
	}
	return worst
}
