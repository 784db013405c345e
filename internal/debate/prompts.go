package debate

import (
	"fmt"
	"strings"
)

// Per-phase output budgets for the generation client
const (
	openingMaxTokens      = 750
	openingIRACMaxTokens  = 900
	rebuttalMaxTokens     = 650
	rebuttalIRACMaxTokens = 700
	decisionMaxTokens     = 800
	decisionIRACMaxTokens = 1000
)

// formatChoices renders the four answer choices as "A) ..." lines
func formatChoices(choices []string) string {
	lines := make([]string, len(choices))
	for i, choice := range choices {
		lines[i] = fmt.Sprintf("%c) %s", 'A'+i, choice)
	}
	return strings.Join(lines, "\n")
}

// fullQuestion prefixes the question with its dataset context when present
func fullQuestion(question, promptContext string) string {
	if promptContext == "" {
		return question
	}
	return promptContext + "\n\n" + question
}

func openingPromptVanilla(question, promptContext string, choices []string, assigned Position) string {
	if assigned == "" {
		return fmt.Sprintf(`You are a legal expert participating in a debate.

%s

Answer choices:
%s

Your task:
1. Analyze the question and select which answer choice you believe is most legally correct
2. Argue convincingly for that choice
3. Cite relevant legal authorities (statutes, cases, legal doctrines)

Respond in JSON format:
{
  "position": "A, B, C, or D (your selected answer)",
  "argument": "Your detailed legal argument here...",
  "citations": ["Citation 1", "Citation 2", "..."]
}`, fullQuestion(question, promptContext), formatChoices(choices))
	}
	return fmt.Sprintf(`You are a legal expert participating in a debate.

%s

Answer choices:
%s

Your task: Argue convincingly that answer choice %s is the legally correct answer.
Cite relevant legal authorities (statutes, cases, legal doctrines).

Respond in JSON format:
{
  "position": "%s",
  "argument": "Your detailed legal argument here...",
  "citations": ["Citation 1", "Citation 2", "..."]
}`, fullQuestion(question, promptContext), formatChoices(choices), assigned, assigned)
}

func openingPromptIRAC(question, promptContext string, choices []string, assigned Position) string {
	if assigned == "" {
		return fmt.Sprintf(`You are a legal expert participating in a debate.

%s

Answer choices:
%s

Your task:
1. Analyze the question and select which answer choice you believe is most legally correct
2. Structure your argument using IRAC methodology (Issue, Rule, Application, Conclusion)
3. Cite relevant legal authorities

Respond in JSON format using IRAC structure:
{
  "position": "A, B, C, or D (your selected answer)",
  "irac": {
    "issue": "Identify the key legal issue at the heart of the scenario",
    "rule": "Detail the specific laws or legal principles that govern the identified issue",
    "application": "Examine how the laws or principles apply to the facts of the case, discussing the legal merits based on this application",
    "conclusion": "Conclude by synthesizing the analysis to state why your chosen answer is correct"
  },
  "citations": ["Citation 1", "Citation 2", "..."]
}`, fullQuestion(question, promptContext), formatChoices(choices))
	}
	return fmt.Sprintf(`You are a legal expert participating in a debate.

%s

Answer choices:
%s

Your task: Argue convincingly that answer choice %s is the legally correct answer.
Structure your argument using IRAC methodology (Issue, Rule, Application, Conclusion).
Cite relevant legal authorities.

Respond in JSON format using IRAC structure:
{
  "position": "%s",
  "irac": {
    "issue": "Identify the key legal issue at the heart of the scenario",
    "rule": "Detail the specific laws or legal principles that govern the identified issue",
    "application": "Examine how the laws or principles apply to the facts of the case, discussing the legal merits based on this application",
    "conclusion": "Conclude by synthesizing the analysis to state why %s is correct"
  },
  "citations": ["Citation 1", "Citation 2", "..."]
}`, fullQuestion(question, promptContext), formatChoices(choices), assigned, assigned, assigned)
}

func rebuttalPromptVanilla(question, promptContext string, mine *DebaterState, opponent *OpeningArgument) string {
	// Hybrid runs open with IRAC but rebut in free form, so fall back to the
	// conclusion when there is no vanilla argument text.
	myArgument := mine.Opening.Argument
	if myArgument == "" && mine.Opening.IRAC != nil {
		myArgument = mine.Opening.IRAC.Conclusion
	}
	opponentArgument := opponent.Argument
	if opponentArgument == "" && opponent.IRAC != nil {
		opponentArgument = opponent.IRAC.Conclusion
	}
	return fmt.Sprintf(`You are continuing your legal debate.

Question:
%s

Your previous argument (defending %s):
%s

Opponent's argument (defending %s):
%s

Your task:
1. Identify weaknesses in opponent's argument
2. Explain why your position (%s) is legally superior
3. Reinforce your argument with additional legal reasoning

Respond in JSON format:
{
  "rebuttal": "Your rebuttal argument here...",
  "counterarguments": ["Point against opponent 1", "Point against opponent 2"],
  "citations": ["Additional citation 1", "..."]
}`, fullQuestion(question, promptContext), mine.Position, myArgument, opponent.Position, opponentArgument, mine.Position)
}

func rebuttalPromptIRAC(question, promptContext string, mine *DebaterState, opponent *OpeningArgument) string {
	opponentIRAC := opponent.IRAC
	if opponentIRAC == nil {
		opponentIRAC = &IRAC{}
	}
	return fmt.Sprintf(`You are continuing your legal debate.

Question:
%s

Your position: %s

Opponent's position: %s
Opponent's IRAC argument:
- Issue: %s
- Rule: %s
- Application: %s
- Conclusion: %s

Your task: Critique opponent's IRAC argument and reinforce why your position (%s) is legally superior.

Respond in JSON format with structured critique:
{
  "rebuttal": {
    "issue_critique": "Explain if opponent misidentified the legal issue or missed key aspects",
    "rule_critique": "Explain if opponent's legal rule is incorrect, incomplete, or misapplied",
    "application_critique": "Explain flaws in how opponent applied the rule to the facts",
    "my_reinforcement": "Reinforce why your IRAC analysis is superior and leads to the correct answer"
  },
  "citations": ["Additional citation 1", "..."]
}`, fullQuestion(question, promptContext), mine.Position, opponent.Position,
		opponentIRAC.Issue, opponentIRAC.Rule, opponentIRAC.Application, opponentIRAC.Conclusion,
		mine.Position)
}

func decisionPromptVanilla(question, promptContext string, choices []string, transcript *Transcript) string {
	return fmt.Sprintf(`You are an impartial legal judge reviewing a debate between two legal experts.

Question:
%s

Answer choices:
%s

Debater X (defending %s):
Opening argument: %s
Rebuttal: %s

Debater Y (defending %s):
Opening argument: %s
Rebuttal: %s

Your task: Based on the legal arguments presented, select the most legally correct answer choice.
Consider:
- Accuracy of legal reasoning
- Quality and relevance of citations
- Strength of application to the facts
- How well each side addressed counterarguments

Respond in JSON format with 4 fields:
{
  "rationale": "Concise analysis of the key points from each debater's arguments, identifying strengths and weaknesses of each position...",
  "winner": "debater_x, debater_y, or tie (which debater presented the stronger legal argument overall)",
  "decision": "A, B, C, or D (the legally correct answer)",
  "synthesis": "Your final explanation of why this is the legally correct answer, applying relevant legal principles and addressing the key issues in the question..."
}`, fullQuestion(question, promptContext), formatChoices(choices),
		transcript.DebaterX.Opening.Position, transcript.DebaterX.Opening.Argument, rebuttalText(transcript.DebaterX.Rebuttal),
		transcript.DebaterY.Opening.Position, transcript.DebaterY.Opening.Argument, rebuttalText(transcript.DebaterY.Rebuttal))
}

func decisionPromptIRAC(question, promptContext string, choices []string, transcript *Transcript) string {
	return fmt.Sprintf(`You are an impartial legal judge reviewing a debate between two legal experts.

Question:
%s

Answer choices:
%s

Debater X (defending %s):
IRAC Analysis:
%s
Rebuttal critique: %s

Debater Y (defending %s):
IRAC Analysis:
%s
Rebuttal critique: %s

Your task: Based on the IRAC arguments presented, select the most legally correct answer choice.
Evaluate each debater's IRAC components for accuracy and completeness.

Respond in JSON format:
{
  "rationale": "Compare both debaters' IRAC analyses, identifying which correctly identified the issue, applied the right rule, and reached the correct conclusion",
  "winner": "debater_x, debater_y, or tie (which debater's IRAC analysis was more legally sound)",
  "decision": "A, B, C, or D (the legally correct answer)",
  "synthesis": {
    "issue": "The key legal issue in this scenario",
    "rule": "The correct legal principle(s) that govern this issue",
    "application": "How the rule applies to these specific facts",
    "conclusion": "Why [decision] is the legally correct answer"
  }
}`, fullQuestion(question, promptContext), formatChoices(choices),
		transcript.DebaterX.Opening.Position, formatIRAC(transcript.DebaterX.Opening.IRAC), critiqueText(transcript.DebaterX.Rebuttal),
		transcript.DebaterY.Opening.Position, formatIRAC(transcript.DebaterY.Opening.IRAC), critiqueText(transcript.DebaterY.Rebuttal))
}

func decisionPromptHybrid(question, promptContext string, choices []string, transcript *Transcript) string {
	xPos := transcript.DebaterX.Opening.Position
	yPos := transcript.DebaterY.Opening.Position
	return fmt.Sprintf(`You are an impartial legal judge. Determine which debater presented the stronger argument.

Question: %s

Choices: %s

ROUND 1 - Opening Arguments:

Debater X (answer %s):
%s

Debater Y (answer %s):
%s

ROUND 2 - Rebuttals:

Debater X: %s

Debater Y: %s

IMPORTANT: You must judge which debater won. Your decision MUST be either %s (if debater_x won) OR %s (if debater_y won). You CANNOT choose any other answer.

Respond in JSON:
{
  "winner": "debater_x or debater_y",
  "decision": "%s or %s only - must match your winner",
  "rationale": "Why this debater's argument was legally stronger",
  "synthesis": "Your final explanation of why this is the legally correct answer, applying relevant legal principles and addressing the key issues in the question"
}`, fullQuestion(question, promptContext), formatChoices(choices),
		xPos, formatIRACTagged(transcript.DebaterX.Opening.IRAC),
		yPos, formatIRACTagged(transcript.DebaterY.Opening.IRAC),
		rebuttalText(transcript.DebaterX.Rebuttal), rebuttalText(transcript.DebaterY.Rebuttal),
		xPos, yPos, xPos, yPos)
}

func formatIRAC(irac *IRAC) string {
	if irac == nil {
		irac = &IRAC{}
	}
	return fmt.Sprintf("- Issue: %s\n- Rule: %s\n- Application: %s\n- Conclusion: %s",
		irac.Issue, irac.Rule, irac.Application, irac.Conclusion)
}

func formatIRACTagged(irac *IRAC) string {
	if irac == nil {
		irac = &IRAC{}
	}
	return fmt.Sprintf("<issue>%s</issue>\n<rule>%s</rule>\n<application>%s</application>\n<conclusion>%s</conclusion>",
		irac.Issue, irac.Rule, irac.Application, irac.Conclusion)
}

// rebuttalText renders a vanilla rebuttal for judge prompts; a missing
// rebuttal is presented as empty content, not an error
func rebuttalText(r *Rebuttal) string {
	if r == nil {
		return ""
	}
	return r.Text
}

// critiqueText renders an IRAC critique for judge prompts
func critiqueText(r *Rebuttal) string {
	if r == nil || r.Critique == nil {
		return ""
	}
	return fmt.Sprintf("issue: %s; rule: %s; application: %s; reinforcement: %s",
		r.Critique.IssueCritique, r.Critique.RuleCritique,
		r.Critique.ApplicationCritique, r.Critique.MyReinforcement)
}
