// ABOUTME: Declarative scoring rule table: weighted text rules, noise patterns,
// ABOUTME: guard rules, and the keyword list used for server-side filters

package rules

import (
	"regexp"

	"ao-radar-api/core/domain"
)

// TextRule is one entry of the scoring table. A rule fires when any of its
// patterns matches the case-folded candidate text; it then contributes its
// weight exactly once and adds its tags to the result set. Rules are
// non-exclusive. Guards, when present, must also match for the rule to fire
// (used by the training family to require an independent security signal).
type TextRule struct {
	Name     string
	Patterns []*regexp.Regexp
	Guards   []*regexp.Regexp
	Weight   int
	Tags     []string
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// NoisePatterns flag adjacent but irrelevant procurement domains (water
// networks, road works, catering, cleaning, ...). Any match forces score 0
// and rejection, regardless of positive signals.
var NoisePatterns = patterns(
	`\beau potable\b`,
	`\bassainissement\b`,
	`\bréseaux? d['’]?eau\b`,
	`\bstation d['’]?épuration\b`,
	`\bdéchets\b`,
	`\bcollecte\b.*\bordures\b`,
	`\bvoirie\b`,
	`\broute\b`,
	`\bchaussée\b`,
	`\benrob[ée]s?\b`,
	`\béclairage public\b`,
	`\bgoudron\b`,
	`\bforage\b`,
	`\bcanalisations?\b`,
	`\bplomberie\b`,
	`\bchauffage\b`,
	`\bventilation\b`,
	`\bclimatisation\b`,
	`\brestauration\b`,
	`\bcantine\b`,
	`\bnettoyage\b`,
	`\bpropret[ée]\b`,
	`\bd[ée]m[ée]nagement\b`,
	`\bespaces? verts?\b`,
	`\bjardinage\b`,
	`\btravaux de peinture\b`,
	`\bma[çc]onnerie\b`,
	`\bcharpente\b`,
	`\bcouverture\b`,
	`\btransport\b`,
	`\bcollectiv(e|it[ée])\b`,
)

// trainingGuards is the independent security-context signal required for the
// training family. A bare training keyword alone does not qualify; this keeps
// unrelated professional-training listings out.
var trainingGuards = patterns(
	`\bs[ée]curit[ée]\b`,
	`\bs[ûu]ret[ée]\b`,
	`\bsurete\b`,
	`\bincendie\b`,
	`\bsst\b`,
	`\bsecourisme\b`,
	`\bcontr[oô]le d['’]?acc[eè]s\b`,
	`\bvid[ée]oprotection\b`,
	`\bcctv\b`,
)

// Table is the ordered scoring rule table. Weights mirror the historical
// tuning: a public-tender signal is worth 25, the monitoring family 25,
// audit and training families 20, certification requirements 8.
var Table = []TextRule{
	{
		Name: "tender",
		Patterns: patterns(
			`appel d['’]?offres?`,
			`\bconsultation\b`,
			`\btender\b`,
			`\brfp\b`,
			`march[eé]s? publics?`,
		),
		Weight: 25,
		Tags:   []string{domain.TagTender},
	},
	{
		Name: "monitoring-family",
		Patterns: patterns(
			`t[ée]l[ée]surveillance`,
			`\bremote monitoring\b`,
			`\bsupervision\b`,
			`centre de t[ée]l[ée]surveillance`,
			`\bpc s[ée]curit[ée]\b`,
			`\balarmes?\b`,
			`\bintrusion\b`,
			`\bvideo ?surveillance\b`,
			`\bcctv\b`,
			`vid[ée]oprotection`,
		),
		Weight: 25,
		Tags:   []string{domain.TagFamilyTele, domain.TagTele},
	},
	{
		Name: "audit-family",
		Patterns: patterns(
			`\baudit\b.*\bs[ée]curit[ée]\b`,
			`\baudit\b.*\bs[ûu]ret[ée]\b`,
			`\bdiagnostic\b.*\bs[ée]curit[ée]\b`,
			`\bconformit[ée]\b.*\bssi\b`,
			`\bapsad\b`,
			`\bcnaps\b`,
			`\biso\s?27001\b`,
			`\bcontr[oô]le d['’]?acc[eè]s\b`,
			`syst[èe]mes? de s[ée]curit[ée]`,
			`s[ée]curit[ée]\s+incendie`,
		),
		Weight: 20,
		Tags:   []string{domain.TagFamilyAudit, domain.TagAudit},
	},
	{
		Name: "training-family",
		Patterns: patterns(
			`\bformations?\b`,
			`\bformateurs?\b`,
			`centre de formation`,
			`e[-\s]?learning`,
			`\bdistanciel\b`,
			`\bpr[ée]sentiel\b`,
			`\bhabilitations?\b`,
			`\bsst\b`,
			`\bsecourisme\b`,
			`\bh0b0\b`,
		),
		Guards: trainingGuards,
		Weight: 20,
		Tags:   []string{domain.TagFamilyTrain, domain.TagTraining},
	},
	{
		Name: "requirements",
		Patterns: patterns(
			`\bcnaps\b`,
			`\bapsad\b`,
			`\biso\s?27001\b`,
			`\biso\s?9001\b`,
			`\bmase\b`,
		),
		Weight: 8,
		Tags:   []string{domain.TagRequirements},
	},
	{
		Name: "hse",
		Patterns: patterns(
			`\bhse\b`,
			`\brisques\b`,
			`\bpr[ée]vention\b`,
			`\bqse\b`,
		),
		Weight: 0,
		Tags:   []string{domain.TagHSE},
	},
}

// Keywords is the substring list used when building server-side filter
// expressions for structured dataset queries.
var Keywords = []string{
	"télésurveillance",
	"telesurveillance",
	"remote monitoring",
	"supervision",
	"alarme",
	"intrusion",
	"vidéoprotection",
	"videosurveillance",
	"cctv",
	"caméra",
	"contrôle d'accès",
	"audit sécurité",
	"audit sûreté",
	"sûreté",
	"sécurité privée",
	"security audit",
	"formation sécurité",
	"e-learning",
	"sst",
	"secourisme",
	"incendie",
}
