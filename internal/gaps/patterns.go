// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gaps mines research-gap statements out of paper abstracts using
// a fixed pattern library, a heuristic sentence analyzer, and lexical
// similarity clustering.
package gaps

import (
	"regexp"
	"strings"
)

// Pattern pairs a compiled case-insensitive regular expression with a
// short gap-category label. The pattern wording is a fixed data asset:
// the exact boundaries are the tested contract, so entries are not to be
// cleaned up or generalized.
type Pattern struct {
	Expr     *regexp.Regexp
	Category string
}

type patternDef struct {
	expr     string
	category string
}

func compilePack(defs []patternDef) []Pattern {
	pack := make([]Pattern, len(defs))
	for i, d := range defs {
		pack[i] = Pattern{
			Expr:     regexp.MustCompile("(?i)" + d.expr),
			Category: d.category,
		}
	}
	return pack
}

// generalPack covers general academic gap phrasing. Always active.
var generalPack = compilePack([]patternDef{
	// Future research needs
	{`(?:further|future|additional) (?:research|studies|investigations|work) (?:is|are|will be|should be|needed|required|warranted|necessary)`, "Future Research Needed"},
	{`(?:more|additional) (?:research|studies|data|evidence) (?:is|are) (?:needed|required|warranted)`, "More Research Needed"},
	{`future (?:work|directions|studies|research) (?:should|will|could|needs to) (?:focus on|address|examine|explore|investigate|consider)`, "Future Direction"},
	{`(?:warrants|requires|merits|calls for) (?:further|additional|more|systematic) (?:investigation|exploration|research|study|analysis)`, "Calls for Investigation"},
	{`urgent(?:ly)? (?:need|require|call) for .{1,50} (?:research|study|investigation)`, "Urgent Research Need"},

	// Knowledge gaps
	{`(?:remains|is) (?:poorly|not fully|incompletely|inadequately|insufficiently) (?:understood|characterized|defined|elucidated|explained)`, "Knowledge Gap"},
	{`(?:little|limited|scant) (?:is|has been) (?:known|understood|reported|documented|studied) (?:about|regarding|concerning|on)`, "Limited Knowledge"},
	{`(?:limited|scarce|insufficient|inadequate) (?:evidence|data|information|knowledge) (?:exists|is available|to support|regarding)`, "Evidence Scarcity"},
	{`(?:unclear|unknown|uncertain|obscure|ambiguous) (?:whether|if|how|why|what|when|where)`, "Uncertainty"},
	{`(?:not|never|yet) (?:been|been fully|been adequately) (?:determined|established|demonstrated|proven|validated)`, "Validation Gap"},

	// Unexplored areas
	{`has (?:not|never|rarely|seldom) been (?:investigated|explored|studied|examined|addressed|evaluated|considered)`, "Unexplored Area"},
	{`(?:no|few|limited|scant|insufficient) (?:studies|investigations|research|publications|literature) (?:have|has) (?:examined|investigated|explored|addressed|focused on)`, "Literature Gap"},
	{`(?:remains|is) (?:largely |mostly |relatively )?(?:unexplored|unexamined|uninvestigated|underexplored|understudied)`, "Underexplored Area"},
	{`potential (?:area|avenue|direction|opportunity) for (?:future|additional|further) (?:investigation|research|exploration|inquiry)`, "Research Opportunity"},
	{`(?:gap|void|lacuna) in (?:the|our|existing) (?:literature|knowledge|understanding|research)`, "Explicit Gap Statement"},

	// Evidence and data gaps
	{`(?:lack|dearth|absence|paucity|shortage) of (?:evidence|studies|data|research|literature|information)`, "Evidence Gap"},
	{`(?:limited|sparse|insufficient|scant|patchy) (?:evidence|data) (?:exists|is available|to support|for|regarding)`, "Data Limitation"},
	{`(?:no|limited|insufficient) (?:empirical|experimental|quantitative|qualitative|systematic) (?:evidence|data|studies|research)`, "Methodological Evidence Gap"},
	{`data (?:scarcity|limitations|gaps|deficits|are lacking)`, "Data Scarcity"},
	{`(?:high-quality|robust|reliable) (?:data|evidence) (?:is|are) (?:lacking|needed|required)`, "Quality Evidence Gap"},

	// Conflicting and inconsistent findings
	{`(?:conflicting|inconsistent|contradictory|mixed|discrepant|divergent) (?:results|evidence|findings|reports|conclusions|data)`, "Conflicting Evidence"},
	{`(?:controversial|debated|disputed|contentious) (?:findings|results|evidence|issues|questions)`, "Controversy"},
	{`(?:lack|absence) of (?:consensus|agreement|convergence|clarity) (?:on|regarding|about|concerning)`, "Consensus Gap"},
	{`(?:debate|controversy) (?:remains|continues|exists|persists) (?:regarding|about|concerning|over)`, "Ongoing Debate"},

	// Methodological gaps
	{`(?:methodological|analytical|experimental|design) (?:limitations|challenges|issues|constraints|shortcomings)`, "Methodological Limitation"},
	{`(?:lack|absence) of (?:standardized|validated|reliable|robust|appropriate) (?:methods|measures|tools|instruments|protocols)`, "Methodology Gap"},
	{`generalizability (?:is|remains) (?:limited|uncertain|unclear|questionable|unknown)`, "Generalizability Gap"},
	{`(?:difficult|challenging|problematic) to (?:compare|replicate|reproduce|generalize)`, "Reproducibility Challenge"},
	{`(?:need|requirement) for (?:novel|improved|better|alternative) (?:methods|approaches|techniques|methodologies)`, "Method Innovation Need"},

	// Study limitations and scope gaps
	{`(?:limitation|constraint|weakness|shortcoming)s? of (?:this|the|our|current|present) (?:study|research|investigation|work|analysis)`, "Study Limitation"},
	{`(?:this|our|the present) (?:study|research) (?:has|had|suffers from) (?:several|some|certain|important|significant) (?:limitations|constraints|shortcomings)`, "Explicit Limitation"},
	{`(?:caution|care|carefulness) (?:should|must|needs to) be (?:exercised|taken|applied) when (?:interpreting|generalizing|extrapolating|applying)`, "Interpretation Caution"},
	{`(?:results|findings) (?:may not|might not|do not) (?:generalize|apply|extend) to`, "Generalization Boundary"},

	// Open questions
	{`(?:unresolved|open|outstanding|pressing|important) (?:issues|questions|problems|challenges|questions remain)`, "Open Question"},
	{`(?:key|important|critical|fundamental|essential) (?:questions|issues|aspects) (?:remain|are) (?:unanswered|unresolved|open|pending)`, "Critical Open Question"},
	{`it (?:remains|is) (?:unclear|unknown|uncertain|to be determined|an open question)`, "Status Unknown"},
	{`(?:whether|how|why|what|to what extent) .{1,60} (?:remains|is) (?:unclear|unknown|uncertain|to be seen)`, "Specific Unknown"},

	// Theoretical gaps
	{`(?:theoretical|conceptual|framework) (?:gap|limitation|weakness|issue)`, "Theoretical Gap"},
	{`lack of (?:theoretical|conceptual) (?:framework|understanding|foundation|clarity)`, "Theory Gap"},
	{`(?:inadequate|insufficient) (?:theoretical|conceptual) (?:development|foundation|grounding)`, "Theory Development Gap"},
})

// technicalPack covers technical, AI, and engineering gaps. Activated when
// the query contains at least one AI/ML term.
var technicalPack = compilePack([]patternDef{
	// Performance and benchmark gaps
	{`(?:remains|is) (?:a challenge|an open problem|unsolved)`, "Performance Gap"},
	{`(?:fails|struggles) to (?:generalize|capture|scale)`, "Generalization Gap"},
	{`(?:performance|accuracy) (?:degrades|drops|plateaus) (?:when|at)`, "Performance Degradation"},
	{`unable to (?:reach|achieve|match) (?:human-level|SOTA|state-of-the-art)`, "SOTA Gap"},
	{`saturated (?:benchmarks|datasets)`, "Benchmark Saturation"},
	{`(?:bottleneck|limitation) in (?:computational|processing|training) (?:efficiency|speed)`, "Efficiency Bottleneck"},

	// Computational and efficiency gaps
	{`computationally (?:expensive|prohibitive|demanding)`, "Computational Cost"},
	{`limited by (?:hardware|gpu|memory|vram|compute)`, "Hardware Limitation"},
	{`high (?:inference|training) cost`, "Cost Barrier"},
	{`lack of (?:energy-efficient|real-time) (?:implementation|processing)`, "Energy/Real-time Gap"},
	{`scalability (?:issues|challenges|concerns)`, "Scalability Gap"},

	// Data and robustness gaps
	{`data (?:scarcity|sparsity|imbalance|paucity)`, "Data Scarcity"},
	{`dependence on (?:large-scale|labeled|curated|annotated) datasets`, "Data Dependency"},
	{`(?:vulnerable|susceptible) to (?:adversarial|noise|out-of-distribution|ood)`, "Robustness Gap"},
	{`black-box (?:nature|model|behavior)`, "Interpretability Gap"},
	{`lack of (?:interpretability|explainability|transparency|understanding)`, "Explainability Gap"},
	{`domain (?:shift|adaptation|generalization) (?:remains|is)`, "Domain Adaptation Gap"},

	// Ethical and bias gaps
	{`(?:bias|fairness|ethical) (?:issues|concerns|challenges)`, "Ethical/Bias Gap"},
	{`(?:demographic|gender|racial) (?:bias|disparity)`, "Demographic Bias"},
	{`lack of (?:diversity|representation) in (?:data|training|datasets)`, "Representation Gap"},
})

// clinicalPack covers clinical and medical research gaps. Activated when
// the query contains at least one medical term.
var clinicalPack = compilePack([]patternDef{
	// Clinical trial and evidence gaps
	{`(?:lack|absence) of (?:randomized|controlled|prospective|rct) (?:trials|studies)`, "RCT Gap"},
	{`limited (?:clinical|real-world) (?:evidence|data|validation)`, "Real-world Evidence Gap"},
	{`(?:small|limited|insufficient) (?:sample size|cohort|patient population|n\s*=\s*\d+)`, "Sample Size Limitation"},
	{`(?:short|limited) (?:follow-up|observation) (?:period|duration)`, "Follow-up Gap"},
	{`heterogeneity (?:in|of) (?:patient|treatment|study) (?:populations|protocols|designs)`, "Heterogeneity Gap"},
	{`lack of (?:longitudinal|long-term) (?:studies|data|outcomes)`, "Longitudinal Data Gap"},

	// Treatment and intervention gaps
	{`optimal (?:dose|dosage|treatment|regimen|protocol) (?:remains|is) (?:unclear|undetermined|unknown|not established)`, "Optimal Treatment Unknown"},
	{`(?:no|limited) (?:standardized|consensus|established) (?:guidelines|protocols|criteria|recommendations)`, "Guideline Gap"},
	{`efficacy (?:in|across) (?:different|diverse) (?:populations|settings|subgroups) (?:is unclear|remains unknown|not established)`, "Population-specific Efficacy Gap"},
	{`long-term (?:safety|efficacy|outcomes|side effects) (?:not|remain) (?:established|evaluated|assessed|known)`, "Long-term Safety Gap"},
	{`(?:adverse|side) effects? (?:profile|data) (?:limited|unknown|not well|insufficiently)`, "Safety Profile Gap"},

	// Diagnostic and biomarker gaps
	{`lack of (?:validated|reliable|specific|sensitive) (?:biomarkers|diagnostic criteria|diagnostic tools)`, "Biomarker Gap"},
	{`(?:sensitivity|specificity|ppv|npv) (?:needs|requires) (?:improvement|validation|optimization)`, "Diagnostic Accuracy Gap"},
	{`early (?:detection|diagnosis|screening) (?:remains|is) (?:challenging|difficult|suboptimal)`, "Early Detection Gap"},
	{`(?:differential|accurate) diagnosis (?:challenging|difficult|remains problematic)`, "Diagnosis Challenge"},

	// Mechanism and pathway gaps
	{`(?:mechanisms?|pathways?) (?:underlying|of action|driving) .{1,60} (?:remain|are) (?:unclear|unknown|poorly understood)`, "Mechanism Gap"},
	{`(?:etiology|pathophysiology) (?:of|underlying) .{1,40} (?:remains|is) (?:unclear|unknown)`, "Etiology Gap"},
})

// emergingPack covers sustainability, equity, and interdisciplinary
// framing. Always active.
var emergingPack = compilePack([]patternDef{
	// Sustainability and environmental gaps
	{`(?:environmental|sustainability|climate|carbon) (?:impact|footprint|implications) (?:not|never|rarely) (?:considered|assessed|evaluated|studied)`, "Sustainability Gap"},
	{`(?:green|sustainable|eco-friendly) (?:alternatives|solutions|approaches) (?:needed|required|lacking)`, "Environmental Solution Gap"},

	// Equity and inclusion gaps
	{`(?:health|research|knowledge) (?:equity|disparity|inequity)`, "Equity Gap"},
	{`(?:underrepresented|marginalized|minority) (?:populations|groups|communities)`, "Representation Gap"},

	// Interdisciplinary gaps
	{`(?:interdisciplinary|cross-disciplinary|multidisciplinary) (?:approach|perspective|collaboration) (?:needed|lacking|absent)`, "Interdisciplinary Gap"},
	{`integration of .{1,40} with .{1,40} (?:remains|is) (?:limited|underexplored)`, "Integration Gap"},
})

// Pack names reported on the gap report.
const (
	packGeneral   = "General"
	packTechnical = "Technical/AI"
	packClinical  = "Clinical/Medical"
	packEmerging  = "Emerging"
)

// techTerms and clinicalTerms are the fixed activation vocabularies for
// the conditional packs.
var techTerms = []string{
	"ai", "artificial intelligence", "machine learning", "deep learning",
	"neural network", "algorithm", "computational", "model", "prediction",
	"classification", "regression", "nlp", "computer vision",
}

var clinicalTerms = []string{
	"patient", "clinical", "treatment", "therapy", "disease",
	"diagnosis", "medical", "hospital", "health", "medicine",
	"drug", "surgical", "symptom", "prognosis", "biomarker",
}

// selectPacks assembles the active pattern list for a query. General and
// Emerging are unconditional; Technical/AI and Clinical/Medical activate
// when the query contains at least one of their terms (activation is
// additive, so a query can trigger both). Packs are concatenated in a
// fixed order so that first-match-wins is deterministic.
func selectPacks(query string) (patterns []Pattern, packsUsed []string, domainScores map[string]int) {
	queryLower := strings.ToLower(query)
	domainScores = make(map[string]int)

	patterns = append(patterns, generalPack...)
	packsUsed = append(packsUsed, packGeneral)

	techScore := countTerms(queryLower, techTerms)
	if techScore > 0 {
		patterns = append(patterns, technicalPack...)
		packsUsed = append(packsUsed, packTechnical)
		domainScores[packTechnical] = techScore
	}

	clinicalScore := countTerms(queryLower, clinicalTerms)
	if clinicalScore > 0 {
		patterns = append(patterns, clinicalPack...)
		packsUsed = append(packsUsed, packClinical)
		domainScores[packClinical] = clinicalScore
	}

	patterns = append(patterns, emergingPack...)
	packsUsed = append(packsUsed, packEmerging)

	return patterns, packsUsed, domainScores
}

func countTerms(s string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(s, term) {
			n++
		}
	}
	return n
}
