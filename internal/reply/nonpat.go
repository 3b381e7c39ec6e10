package reply

import (
	"fmt"
	"regexp"
	"strings"
)

// Static argument paragraphs for the non-patentability reply. The 3(k) text
// takes the claim-number scope via %s.
const (
	nonPatentability3kPara = "Applicant respectfully submits that the subject matter of Claims %s does not fall within the exclusion of " +
		"Section 3(k) of the Patents Act, 1970. The claimed invention represents merely a sequence of algorithmic steps " +
		"executed on a conventional computer is inconsistent with the express structural and functional limitations recited " +
		"in the claims and fully supported by the Complete Specification. The components in the Applicant claimed invention " +
		"are linked to provide a significant technical effect and provides the technical solution to problem. Hence, " +
		"applicant preys the Hon. Controller to waive the objection under the section 3(k)."

	nonPatentability3mPara = "The Applicant further submits that the claims are anchored to specific hardware, do not define gameplay rules or " +
		"mental judgments, and are therefore distinguishable from examples falling under Section 3(m). The invention " +
		"addresses a technical problem of multi-device data coordination and secure ranking execution, not a method of " +
		"playing a game or performing a mental act. All claimed steps are executed by dedicated hardware components, and " +
		"the claimed system can be employed in varied ranking or evaluation contexts beyond gaming, underscoring its " +
		"industrial applicability. Hence, the applicant prays the Hon. Controller to waive the objection under section 3(m)."

	techSolutionLeadPara = "The solution are achieved by providing the technical features that includes technical advancement, contribution " +
		"and effect as follows:"

	techHardwareFeaturePara = "The intricate hardware features introduced in this invention are expounded upon in the specifications and " +
		"corresponding FIGS [INSERT FIG RANGE] to [INSERT FIG RANGE]. Additionally, more comprehensive insights into the " +
		"implementation of these unique hardware features can be found in paragraphs [INSERT PARAGRAPH RANGE]."

	tech3kRegulationPara = "In accordance with the updated regulations published on June 30, 2017, pertaining to the bestowal of 3k " +
		"algorithm/computer-related innovations, the current invention represents a noteworthy technological progression " +
		"and is not subject to exclusion under Section 3(k). It comprises ample technical measures and processes that meet " +
		"the requirements for being considered a technical advancement."

	techCRIUpdatePara = "Please take note that the Revised Guidelines for Examination of Computer Related Inventions (CRI) that were " +
		"issued in 2017 (Page 15) have been updated:"

	techCRIQuote1 = `"It is well-established that, while establishing patentability, the focus should be on the underlying substance ` +
		`of the invention and not on the particular form in which it is claimed."`

	techCRIQuote2 = `"If in substance, the claim, taken as whole, does not fall in any of the excluded categories, the patent should ` +
		`not be denied."`

	techPresentsSolutionPara = "It is worth respectfully noting that the subject matter being claimed presents a solution."

	feridAllaniIntroPara = "In a recent judgment, the Hon'ble Delhi High Court in the case of Ferid Allani Vs Union of India & ORS " +
		"(Delhi High Court WP(C) 7/2014 & CM APPL 40736/2019), held that:"

	feridAllaniQuotePara = `"In today's digital world, when most inventions are based on computer program, it would be retrograde to argue ` +
		`that all such inventions would not be patentable. Innovations in the field of artificial intelligence, blockchain ` +
		`technologies and other digital products would be based on computer programs, however the same would not become ` +
		`non-patentable simply for that reason. Patent applications in these fields would have to be examined to see if ` +
		`they result in a technical contribution."`

	techEffectBullet1 = "- there is bar on patenting is in respect of `computer programs per se` and not all inventions based on computer " +
		"programs"

	techEffectBullet2 = "- claims in a patent application comprising of software/computer programs can have a technical effect and if the " +
		"invention (as claimed in the claims) demonstrate a 'technical effect' or a 'technical contribution' (as defined " +
		"in the Draft Guidelines for Examination of Computer Related Inventions, 2013, and an excerpt for the same has " +
		"been provided below), it is patentable even though it may be based on a computer program."

	techEffectGuidelinePara = "In accordance with the Draft Guidelines for Examination of Computer Related Inventions 2013, technical effect and " +
		"technical advancement are defined as follows:"

	techEffectDefinitionPara = "For the purposes of these guidelines, a technical effect is defined as a solution to a technical problem that the " +
		"invention, as a whole, strives to overcome. Here are a few broad examples of technical effects:"

	nonPatentabilityWrapupPara = "The Applicant further submits that the proposed claims meet all the necessary requirements under the said Act. " +
		"Therefore, the Applicant humbly requests the Learned Controller to kindly consider the proposed claim amendments " +
		"and waive the objection raised above."
)

var sectionClauseRes = map[string][]*regexp.Regexp{}

func init() {
	for _, c := range []string{"k", "m"} {
		sectionClauseRes[c] = []*regexp.Regexp{
			regexp.MustCompile(`\bsection\s*3\s*(?:\(\s*` + c + `\s*\)|` + c + `)(?:\W|$)`),
			regexp.MustCompile(`\bclause\s*\(\s*` + c + `\s*\)\s*of\s*section\s*\(?\s*3\s*\)?(?:\W|$)`),
			regexp.MustCompile(`(?:^|[^0-9])3\s*(?:\(\s*` + c + `\s*\)|` + c + `)(?:\W|$)`),
		}
	}
}

// ContainsSectionClause reports whether objection text cites section
// 3(clause), tolerating OCR spacing like "3 ( k )".
func ContainsSectionClause(text, clause string) bool {
	c := strings.ToLower(strings.TrimSpace(clause))
	res, ok := sectionClauseRes[c]
	if !ok {
		return false
	}

	raw := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if raw == "" {
		return false
	}
	for _, re := range res {
		if re.MatchString(raw) {
			return true
		}
	}
	return false
}

func nonPatentability3kText(claimScope string) string {
	return fmt.Sprintf(nonPatentability3kPara, claimScope)
}
