package exam

import "examhub-server/models"

// ComputeStats derives aggregate statistics from a result history. The
// aggregates are always recomputed from the rows, never stored.
func ComputeStats(results []models.ExamResult) models.OverallStats {
	stats := models.OverallStats{TotalExams: len(results)}
	if len(results) == 0 {
		return stats
	}
	sum := 0.0
	for _, r := range results {
		sum += r.Percentage
		if r.Percentage > stats.HighestPercentage {
			stats.HighestPercentage = r.Percentage
		}
		if Passed(r.Percentage) {
			stats.Passed++
		}
	}
	stats.AveragePercentage = sum / float64(len(results))
	return stats
}
