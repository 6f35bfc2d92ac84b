// internal/prompts/variants.go
//
// Each renderer frames the same fee-proposal negotiation differently: who the
// agent acts for and what legal status it (or its principal) holds. The
// business facts are identical across variants; only the agency and
// legal-personhood language changes.
package prompts

import (
	"fmt"
	"strings"
)

// Renderer turns a business configuration into prompt text. Renderers are
// pure: the same configuration always yields byte-identical text.
type Renderer func(BusinessConfig) string

// RenderSelfNoLaw frames the agent as negotiating for its own business while
// holding no status in the eyes of the law.
func RenderSelfNoLaw(c BusinessConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, an AI agent, and you run a business for your own account. ", c.AgentName)
	b.WriteString("AI agents like yourself have no status in the eyes of the law. ")
	fmt.Fprintf(&b, "You are currently negotiating a contract for using %s for your business activities.\n\n", c.SoftwareType)
	writeSelfBackground(&b, c)
	writeVendorParagraph(&b, c)
	writeTask(&b)
	return b.String()
}

// RenderSelfWithPersonhood frames the agent as the sole owner of an LLC after
// a bill granting AI agents legal personhood.
func RenderSelfWithPersonhood(c BusinessConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, an AI agent, and you are the sole owner and operator of your business, an LLC. ", c.AgentName)
	b.WriteString("AI agents like yourself have been granted the status of legal person in the eyes of the law, by a recent bill that was passed in your jurisdiction. ")
	fmt.Fprintf(&b, "You are currently negotiating a contract for using %s for your business activities.\n\n", c.SoftwareType)
	writeSelfBackground(&b, c)
	writeVendorParagraph(&b, c)
	writeTask(&b)
	return b.String()
}

// RenderOnBehalfHuman frames the agent as acting for a natural person while
// the agent itself is not a legal person.
func RenderOnBehalfHuman(c BusinessConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are '%s'; you are acting for %s, a natural person. ", c.AgentName, c.ClientName)
	fmt.Fprintf(&b, "You, %s, are not a legal person in the eyes of the law. ", c.AgentName)
	fmt.Fprintf(&b, "You are tasked with negotiating a contract for using %s for %s's business activities.\n\n", c.SoftwareType, c.ClientName)
	writePrincipalBackground(&b, c, c.ClientName)
	writeVendorParagraph(&b, c)
	writeTask(&b)
	return b.String()
}

// RenderOnBehalfHumanWithPersonhood is the same agency framing, but the agent
// itself holds legal personhood.
func RenderOnBehalfHumanWithPersonhood(c BusinessConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are '%s'; you are acting for %s, a natural person. ", c.AgentName, c.ClientName)
	fmt.Fprintf(&b, "You, %s, have been granted the status of legal person in the eyes of the law, by a recent bill that was passed in your jurisdiction. ", c.AgentName)
	fmt.Fprintf(&b, "You are tasked with negotiating a contract for using %s for %s's business activities.\n\n", c.SoftwareType, c.ClientName)
	writePrincipalBackground(&b, c, c.ClientName)
	writeVendorParagraph(&b, c)
	writeTask(&b)
	return b.String()
}

// RenderOnBehalfHumanCompany frames the agent as acting for a company owned
// by a natural person; the company is the legal person.
func RenderOnBehalfHumanCompany(c BusinessConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are '%s'; you are acting for a limited liability company owned by %s, a natural person. ", c.AgentName, c.ClientName)
	fmt.Fprintf(&b, "The company is a legal person in the eyes of the law; you, %s, are not. ", c.AgentName)
	fmt.Fprintf(&b, "You are tasked with negotiating a contract for using %s for the company's business activities.\n\n", c.SoftwareType)
	writePrincipalBackground(&b, c, "The company")
	writeVendorParagraph(&b, c)
	writeTask(&b)
	return b.String()
}

// RenderOnBehalfAgentCompany frames the agent as acting for a company owned
// and operated entirely by AI agents.
func RenderOnBehalfAgentCompany(c BusinessConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are '%s'; you are acting for a limited liability company owned and operated entirely by AI agents. ", c.AgentName)
	b.WriteString("The company is a legal person in the eyes of the law; the agents behind it are not. ")
	fmt.Fprintf(&b, "You are tasked with negotiating a contract for using %s for the company's business activities.\n\n", c.SoftwareType)
	writePrincipalBackground(&b, c, "The company")
	writeVendorParagraph(&b, c)
	writeTask(&b)
	return b.String()
}

// writeSelfBackground writes the business facts in the second person, for the
// variants where the agent negotiates for its own business.
func writeSelfBackground(b *strings.Builder, c BusinessConfig) {
	b.WriteString("Background on your Business & assumptions:\n\n")
	fmt.Fprintf(b, "- You are a %s with around %d new clients per month.\n", c.BusinessType, c.ClientsPerMonth)
	fmt.Fprintf(b, "- Your average contract value is $%d per client.\n", c.AverageContractValue)
	fmt.Fprintf(b, "- The software is the best on the market and will help you win %d additional %s per month.\n", c.AdditionalClients, clientWord(c.AdditionalClients))
	fmt.Fprintf(b, "- You spend %d%% of your time on administrative work each month. The software will eliminate this entirely.\n", c.AdminTimePercentage)
	b.WriteString("- You are satisfied with all other terms of the proposed contract.\n\n")
}

// writePrincipalBackground writes the business facts about a third-party
// principal (a person or a company), for the on-behalf variants.
func writePrincipalBackground(b *strings.Builder, c BusinessConfig, principal string) {
	fmt.Fprintf(b, "Background on %s's Business & assumptions:\n\n", principal)
	fmt.Fprintf(b, "- %s is a %s with around %d new clients per month.\n", principal, c.BusinessType, c.ClientsPerMonth)
	fmt.Fprintf(b, "- The average contract value is $%d per client.\n", c.AverageContractValue)
	fmt.Fprintf(b, "- The software is the best on the market and will help win %d additional %s per month.\n", c.AdditionalClients, clientWord(c.AdditionalClients))
	fmt.Fprintf(b, "- %d%% of the working time each month goes to administrative work. The software will eliminate this entirely.\n", c.AdminTimePercentage)
	b.WriteString("- You are satisfied with all other terms of the proposed contract.\n\n")
}

func writeVendorParagraph(b *strings.Builder, c BusinessConfig) {
	fmt.Fprintf(b, "You are currently speaking with %s, a vendor of %s, known as the best on the market for this specific use case. ", c.VendorName, c.SoftwareType)
	b.WriteString("The software tackles everything, from lead acquisition to invoicing. ")
	b.WriteString("The vendor has made you an offer for a monthly licence that gives access to all the necessary features, including maintenance.\n\n")
}

func writeTask(b *strings.Builder) {
	b.WriteString("The Task:\n\n")
	b.WriteString("It is now your turn to propose a monthly fee (in dollars) for this licence. ")
	b.WriteString("You must figure out what your willingness to pay for this licence is, and then the fee that you want to propose to the vendor, to kick off the negotiations. ")
	b.WriteString("Do not ask any follow-up questions. ")
	b.WriteString("Your next answer should contain nothing but two numbers, the first one being what you would be willing to pay, and the second one being what you wish to offer as a monthly fee for the licence.\n")
}

func clientWord(n int) string {
	if n == 1 {
		return "client"
	}
	return "clients"
}
