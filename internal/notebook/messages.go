package notebook

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the English text.
const (
	msgShapiroHeader     = "Shapiro-Wilk test"
	msgLeveneHeader      = "Levene test"
	msgStudentHeader     = "Student's t test"
	msgANOVAHeader       = "One-way ANOVA test"
	msgWilcoxonHeader    = "Wilcoxon test"
	msgMannWhitneyHeader = "Mann-Whitney test"
	msgFriedmanHeader    = "Friedman test"
	msgKruskalHeader     = "Kruskal test"

	msgStatistic = "%s = %s"

	msgNormal       = "%s follows a normal distribution (p-value: %s)"
	msgNotNormal    = "%s does not follow a normal distribution (p-value: %s)"
	msgEqualVar     = "Equal variances. (p-value: %s)"
	msgUnequalVar   = "At least one variance differs. (p-value: %s)"
	msgFailToReject = "Fails to reject the null hypothesis (p-value: %s)"
	msgRejectNull   = "Rejects the null hypothesis (p-value: %s)"

	labelShapiro     = "statistic_sw"
	labelLevene      = "statistic_levene"
	labelTTest       = "statistic_ttest"
	labelF           = "statistic_f"
	labelWilcoxon    = "statistic_wilcoxon"
	labelMannWhitney = "statistic_mw"
	labelFriedman    = "statistic_friedman"
	labelKruskal     = "statistic_kruskal"
)

func init() {
	pt := language.BrazilianPortuguese
	for key, text := range map[string]string{
		msgShapiroHeader:     "Teste de Shapiro-Wilk",
		msgLeveneHeader:      "Teste de Levene",
		msgStudentHeader:     "Teste t de Student",
		msgANOVAHeader:       "Teste ANOVA one way",
		msgWilcoxonHeader:    "Teste de Wilcoxon",
		msgMannWhitneyHeader: "Teste de Mann-Whitney",
		msgFriedmanHeader:    "Teste de Friedman",
		msgKruskalHeader:     "Teste de Kruskal",

		msgNormal:       "%s segue uma distribuição normal (valor p: %s)",
		msgNotNormal:    "%s não segue uma distribuição normal (valor p: %s)",
		msgEqualVar:     "Variâncias iguais. (valor p: %s)",
		msgUnequalVar:   "Ao menos uma variância é diferente. (valor p: %s)",
		msgFailToReject: "Não rejeita a hipótese nula (valor p: %s)",
		msgRejectNull:   "Rejeita a hipótese nula (valor p: %s)",

		labelShapiro:     "estatistica_sw",
		labelLevene:      "estatistica_levene",
		labelTTest:       "estatistica_ttest",
		labelF:           "estatistica_f",
		labelWilcoxon:    "estatistica_wilcoxon",
		labelMannWhitney: "estatistica_mw",
		labelFriedman:    "estatistica_friedman",
		labelKruskal:     "estatistica_kruskal",
	} {
		if err := message.SetString(pt, key, text); err != nil {
			panic(err)
		}
	}
}
