package validate

import (
	"github.com/clearform/sf86-filler/internal/form"
)

// ValidateSection1 checks the full-name section. Missing identifying names
// block completion; the optional middle name and suffix do not.
func ValidateSection1(data form.Data) StatsResult {
	c := newChecker("section1", data)
	if !data.HasSection("section1") {
		c.errorf("Section 1: no data provided")
		return StatsResult{Result: c.result(), Total: 4}
	}

	c.requireString("section1.lastName", "Last name")
	c.requireString("section1.firstName", "First name")
	c.checkName("section1.lastName", "Last name")
	c.checkName("section1.firstName", "First name")
	c.checkName("section1.middleName", "Middle name")
	if !c.has("section1.middleName") {
		c.warnf("Middle name not provided; enter NMN if none")
	}

	mapped := 0
	for _, p := range []string{"section1.lastName", "section1.firstName", "section1.middleName", "section1.suffix"} {
		if c.has(p) {
			mapped++
		}
	}
	return StatsResult{Result: c.result(), Total: 4, Mapped: mapped}
}

// ValidateSection2 checks the date-of-birth section.
func ValidateSection2(data form.Data) Result {
	c := newChecker("section2", data)
	if !data.HasSection("section2") {
		c.errorf("Section 2: no data provided")
		return c.result()
	}
	c.requireString("section2.dateOfBirth", "Date of birth")
	return c.result()
}

// ValidateSection3 checks the place-of-birth section. The state requirement
// is conditioned on the birth country.
func ValidateSection3(data form.Data) Result {
	c := newChecker("section3", data)
	if !data.HasSection("section3") {
		c.errorf("Section 3: no data provided")
		return c.result()
	}

	c.requireString("section3.city", "City")
	c.requireString("section3.country", "Country")
	if c.str("section3.country") == "United States" && c.str("section3.state") == "" {
		c.errorf("State is required for US birth locations")
	}
	if c.str("section3.county") == "" {
		c.warnf("County not provided")
	}
	return c.result()
}

// ValidateSection4 checks the SSN section. A missing SSN is an error unless
// the applicant marked it not applicable.
func ValidateSection4(data form.Data) StatsResult {
	c := newChecker("section4", data)
	if !data.HasSection("section4") {
		c.errorf("Section 4: no data provided")
		return StatsResult{Result: c.result(), Total: 2}
	}

	mapped := 0
	for _, p := range []string{"section4.ssn", "section4.notApplicable"} {
		if c.has(p) {
			mapped++
		}
	}

	if c.yes("section4.notApplicable") {
		if c.str("section4.ssn") != "" {
			c.warnf("SSN provided but marked not applicable; the SSN will be ignored")
		}
		return StatsResult{Result: c.result(), Total: 2, Mapped: mapped}
	}

	ssn := c.str("section4.ssn")
	if ssn == "" {
		c.errorf("SSN is required")
	} else if !ssnPattern.MatchString(ssn) {
		c.errorf("SSN must use the format 123-45-6789")
	}
	return StatsResult{Result: c.result(), Total: 2, Mapped: mapped}
}

// ValidateSection9 checks the citizenship section. Document requirements
// follow the selected citizenship status.
func ValidateSection9(data form.Data) Result {
	c := newChecker("section9", data)
	if !data.HasSection("section9") {
		c.errorf("Section 9: no data provided")
		return c.result()
	}

	status := c.str("section9.citizenshipStatus")
	if status == "" {
		c.errorf("Citizenship status is required")
		return c.result()
	}

	switch status {
	case "NATURALIZED":
		c.requireString("section9.naturalized.certificateNumber", "Naturalization certificate number")
		if c.str("section9.naturalized.courtName") == "" {
			c.warnf("Naturalization court name not provided")
		}
	case "DERIVED":
		c.requireString("section9.derived.certificateNumber", "Citizenship certificate number")
	case "NOT_A_CITIZEN":
		c.requireString("section9.nonCitizen.alienRegistrationNumber", "Alien registration number")
	case "BORN_ABROAD":
		if c.str("section9.bornAbroad.documentNumber") == "" {
			c.warnf("Document number for birth abroad not provided")
		}
	}
	return c.result()
}

// ValidateSection11 checks the residence history. Each listed residence
// needs an address; US addresses need a state.
func ValidateSection11(data form.Data) Result {
	c := newChecker("section11", data)
	if !data.HasSection("section11") {
		c.errorf("Section 11: no data provided")
		return c.result()
	}

	n := c.entryCount("section11.residences")
	if n == 0 {
		c.errorf("At least one residence is required")
		return c.result()
	}

	for i := 0; i < n; i++ {
		entry := indexed("section11.residences", i)
		c.requireString(entry+".residenceAddress.street", labelN("Residence", i, "street"))
		c.requireString(entry+".residenceAddress.city", labelN("Residence", i, "city"))
		c.requireString(entry+".fromDate", labelN("Residence", i, "from date"))
		if c.str(entry+".residenceAddress.country") == "United States" &&
			c.str(entry+".residenceAddress.state") == "" {
			c.errorf("%s: state is required for US addresses", labelEntry("Residence", i))
		}
		if c.str(entry+".contact.lastName") == "" {
			c.warnf("%s: no contact person who knew you at this address", labelEntry("Residence", i))
		}
	}
	return c.result()
}

// ValidateSection13 checks the employment history in whichever shape the
// document carries, split subsections or the legacy combined block.
func ValidateSection13(data form.Data) Result {
	c := newChecker("section13", data)
	if !data.HasSection("section13") {
		c.errorf("Section 13: no data provided")
		return c.result()
	}

	split := false
	for _, sub := range []struct{ prefix, nameField, label string }{
		{"section13.federalEmployment.entries", "agencyName", "Federal employment"},
		{"section13.nonFederalEmployment.entries", "employerName", "Employment"},
		{"section13.selfEmployment.entries", "businessName", "Self-employment"},
	} {
		n := c.entryCount(sub.prefix)
		if n > 0 {
			split = true
		}
		for i := 0; i < n; i++ {
			entry := indexed(sub.prefix, i)
			c.requireString(entry+"."+sub.nameField, labelN(sub.label, i, "name"))
			c.requireString(entry+".fromDate", labelN(sub.label, i, "from date"))
		}
	}
	if c.entryCount("section13.unemployment.entries") > 0 {
		split = true
	}

	if !split {
		n := c.entryCount("section13.employmentEntries")
		if n == 0 {
			c.errorf("At least one employment entry is required")
			return c.result()
		}
		for i := 0; i < n; i++ {
			entry := indexed("section13.employmentEntries", i)
			c.requireString(entry+".employerName", labelN("Employment", i, "employer name"))
			c.requireString(entry+".fromDate", labelN("Employment", i, "from date"))
		}
	}
	return c.result()
}

// ValidateSection14 checks selective-service registration. The registration
// number is required only for registered applicants.
func ValidateSection14(data form.Data) Result {
	c := newChecker("section14", data)
	if !data.HasSection("section14") {
		c.errorf("Section 14: no data provided")
		return c.result()
	}

	c.requireFlag("section14.bornAfter1959", "Born after 1959")
	if !c.yes("section14.bornAfter1959") {
		return c.result()
	}

	c.requireFlag("section14.registeredWithSss", "Selective service registration")
	if c.yes("section14.registeredWithSss") {
		c.requireString("section14.registrationNumber", "Selective service registration number")
	} else if c.has("section14.registeredWithSss") && c.str("section14.noRegistrationExplanation") == "" {
		c.warnf("No explanation provided for missing selective service registration")
	}
	return c.result()
}

// ValidateSection18 checks the relatives section.
func ValidateSection18(data form.Data) Result {
	c := newChecker("section18", data)
	if !data.HasSection("section18") {
		c.errorf("Section 18: no data provided")
		return c.result()
	}

	n := c.entryCount("section18.relatives")
	if n == 0 {
		c.errorf("At least one relative is required")
		return c.result()
	}
	for i := 0; i < n; i++ {
		entry := indexed("section18.relatives", i)
		c.requireString(entry+".relativeType", labelN("Relative", i, "relationship"))
		c.requireString(entry+".lastName", labelN("Relative", i, "last name"))
		c.checkName(entry+".lastName", labelN("Relative", i, "last name"))
		c.checkName(entry+".firstName", labelN("Relative", i, "first name"))
		if c.str(entry+".countryOfBirth") == "" {
			c.warnf("%s: country of birth not provided", labelEntry("Relative", i))
		}
	}
	return c.result()
}

// ValidateSection29 checks the association-record questions. All four
// Yes/No flags must be answered; a yes on membership requires at least one
// organization entry.
func ValidateSection29(data form.Data) StatsResult {
	c := newChecker("section29", data)
	if !data.HasSection("section29") {
		c.errorf("Section 29: no data provided")
		return StatsResult{Result: c.result(), Total: 15}
	}

	legacy := c.has("section29.terrorismAssociations.hasAssociation") &&
		!c.has("section29.terrorismMembership.hasMembership") &&
		!c.has("section29.terrorismAdvocacy.hasAdvocated")

	if legacy {
		if c.yes("section29.terrorismAssociations.hasAssociation") &&
			c.entryCount("section29.terrorismAssociations.entries") == 0 {
			c.errorf("Terrorism association entries are required when association is indicated")
		}
	} else {
		c.requireFlag("section29.terrorismMembership.hasMembership", "Terrorism organization membership")
		c.requireFlag("section29.terrorismAdvocacy.hasAdvocated", "Terrorism advocacy")
		if c.yes("section29.terrorismMembership.hasMembership") &&
			c.entryCount("section29.terrorismMembership.organizations") == 0 {
			c.errorf("Organization entries are required when membership is indicated")
		}
		if c.yes("section29.terrorismAdvocacy.hasAdvocated") {
			c.requireString("section29.terrorismAdvocacy.advocacyReason", "Advocacy reason")
		}
	}

	c.requireFlag("section29.overthrowAdvocacy.hasAdvocated", "Overthrow advocacy")
	c.requireFlag("section29.violenceAssociation.hasAssociation", "Violence association")

	return StatsResult{Result: c.result(), Total: 15, Mapped: len(c.flat)}
}
