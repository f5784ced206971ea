package constant

const (
	ChatMessageRoleUser = "user"
	ChatMessageRoleBot  = "bot"

	// User-facing reply texts. EmptyInputReply and NotFoundTemplate must
	// stay textually distinguishable.
	EmptyInputReply   = "Please ask a question."
	NoContextReply    = "I'm not sure who or what you're referring to. Could you be more specific?"
	LookupFailedReply = "I could not complete the search right now. Please try again."

	NotFoundTemplate = "Could not find information about '%s'.\n\nTry rephrasing your question or checking the spelling."

	GreetingReply = `Hello! I'm a conversational knowledge bot.

I can:
- Answer factual questions using Wikipedia
- Remember our conversation, so follow-ups like "where did he study" work
- Start over whenever you ask me to clear the conversation

Try: "Who is the CEO of Google?" then "Where did he study?"`

	ThanksReply = "You're welcome! Feel free to ask more questions anytime."

	HelpReply = `I answer factual questions using Wikipedia and keep track of the
conversation, so you can follow up with pronouns ("he", "she", "it").

Examples:
- Who is the CEO of OpenAI?
- What is quantum computing?
- Tell me about the French Revolution
- Where is the Taj Mahal?

Tips:
- Be specific with names and topics
- Use full names for people on the first question`
)

// Small-talk tables checked before a question reaches extraction. These
// inputs are answered with canned replies and are not recorded as turns.
var (
	GreetingInputs = []string{"hi", "hello", "hey"}
	HelpInputs     = []string{"help", "?"}
	ThanksMarker   = "thank"
)
