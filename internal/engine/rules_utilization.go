package engine

import (
	"fmt"
	"sort"

	"github.com/wyng-health/billaudit/internal/model"
)

// evalDrugUnitsImplausible flags HCPCS drug/infusion codes billed with more
// units than the code's MUE-style plausibility ceiling.
func evalDrugUnitsImplausible(in *Input) []model.Detection {
	var dets []model.Detection
	for i, l := range in.Lines {
		ceiling, ok := in.Tables.DrugUnitCeilings[l.Code]
		if !ok {
			continue
		}
		units := l.UnitCount()
		if units <= ceiling {
			continue
		}
		dets = append(dets, model.Detection{
			Evidence: model.UnitsEvidence{
				LineRefs: []int{i},
				Code:     l.Code,
				Units:    units,
				MaxUnits: ceiling,
			},
			Explanation: fmt.Sprintf(
				"Drug code %s was billed with %d units; more than %d units in one encounter is implausible for this drug.",
				l.Code, units, ceiling),
			SuggestedQuestions: []string{
				fmt.Sprintf("Can you verify from the medical record that %d units of %s were actually administered?", units, l.Code),
			},
			PolicyCitations: []string{
				"CMS Medically Unlikely Edits (MUE) files",
			},
		})
	}
	return dets
}

// evalTherapyTimeExcessive sums units of timed therapy codes per date of
// service, converts them to minutes at the configured per-unit length, and
// flags any date exceeding the daily ceiling.
func evalTherapyTimeExcessive(in *Input) []model.Detection {
	byDate := make(map[string][]int)
	for i, l := range in.Lines {
		if _, ok := in.Tables.TimedTherapyCodes[l.Code]; !ok {
			continue
		}
		byDate[l.DateOfService] = append(byDate[l.DateOfService], i)
	}

	var dets []model.Detection
	for _, dos := range sortedGroupKeys(byDate) {
		refs := byDate[dos]
		var totalUnits int64
		var codes []string
		for _, i := range refs {
			totalUnits += in.Lines[i].UnitCount()
			codes = append(codes, in.Lines[i].Code)
		}
		totalMinutes := totalUnits * in.Cfg.TherapyMinutesPerUnit
		if totalMinutes <= in.Cfg.TherapyDailyMinutesCeiling {
			continue
		}
		sort.Ints(refs)

		dets = append(dets, model.Detection{
			Evidence: model.TherapyTimeEvidence{
				LineRefs:      refs,
				DateOfService: dos,
				Codes:         uniqueSortedStrings(codes),
				TotalUnits:    totalUnits,
				TotalMinutes:  totalMinutes,
				DailyCeiling:  in.Cfg.TherapyDailyMinutesCeiling,
			},
			Explanation: fmt.Sprintf(
				"Timed therapy codes on this date add up to %d units, or %d minutes of treatment — beyond the %d-minute daily plausibility ceiling.",
				totalUnits, totalMinutes, in.Cfg.TherapyDailyMinutesCeiling),
			SuggestedQuestions: []string{
				fmt.Sprintf("Do the therapy notes document %d minutes of timed treatment on this date?", totalMinutes),
			},
			PolicyCitations: []string{
				"CMS Pub 100-04, Ch. 5 (timed code billing, 15-minute units)",
			},
		})
	}
	return dets
}

// evalEMProcedureSameDay flags an E/M visit billed on the same date as a
// minor procedure when the visit line lacks modifier 25. Without it the visit
// is generally bundled into the procedure.
func evalEMProcedureSameDay(in *Input) []model.Detection {
	procByDate := make(map[string][]int)
	for i, l := range in.Lines {
		if _, ok := in.Tables.MinorProcedureCodes[l.Code]; ok {
			procByDate[l.DateOfService] = append(procByDate[l.DateOfService], i)
		}
	}
	if len(procByDate) == 0 {
		return nil
	}

	var dets []model.Detection
	for i, l := range in.Lines {
		if _, ok := in.Tables.EMVisitCodes[l.Code]; !ok {
			continue
		}
		if l.HasModifier("25") {
			continue
		}
		procs, ok := procByDate[l.DateOfService]
		if !ok {
			continue
		}
		refs := append([]int{i}, procs...)
		sort.Ints(refs)

		dets = append(dets, model.Detection{
			Evidence: model.ModifierEvidence{
				LineRefs:      refs,
				Code:          l.Code,
				Modifiers:     l.Modifiers,
				DateOfService: l.DateOfService,
			},
			Explanation: fmt.Sprintf(
				"Office visit %s was billed on the same date as a minor procedure without modifier 25. Unless the visit was significant and separately identifiable, it is bundled into the procedure payment.",
				l.Code),
			SuggestedQuestions: []string{
				"Was the office visit on this date separate from the procedure, and is that documented?",
			},
			PolicyCitations: []string{
				"NCCI Policy Manual, Ch. I (modifier 25)",
			},
		})
	}
	return dets
}
