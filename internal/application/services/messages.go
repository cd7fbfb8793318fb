package services

import (
	"fmt"

	"github.com/fomo-ops/fomobot/internal/domain"
)

// HelpText is shown in response to the help subcommand and to members
// joining the channel.
const HelpText = `I am FOMOBOT. I can help you with on-call status, coverage and opening the pod bay doors.

* ` + "`/fomo help`" + ` -- show this help
* ` + "`/fomo swap`" + ` -- request an on-call swap
* ` + "`/fomo calendar`" + ` -- show on-call calendar`

// requestMessage renders the channel post announcing a swap request.
// The token line must stay the last line of the message; resolution
// depends on finding it there.
func requestMessage(request domain.SwapRequest, acceptReaction, token string) string {
	w := request.Window
	return fmt.Sprintf(`:hand: <!here>

<@%s> would like on-call coverage
from:  *%s %s*
to:  *%s %s*

Respond to this message with :%s: to cover this period for <@%s>

%s`,
		request.Requestor,
		w.StartDate, w.StartTime,
		w.EndDate, w.EndTime,
		acceptReaction, request.Requestor,
		domain.TokenLine(token),
	)
}

// coordinationMessage renders the machine-flavored post that stands in
// for the paging and HR system calls made alongside the NATS event.
func coordinationMessage(c domain.SwapConfirmation) string {
	w := c.Request.Window
	return fmt.Sprintf(`_This is the bot, posting a notification message in another channel about the swap, or doing API calls to Everbridge and HRWizzle._
`+"```"+`INITIATE_ON_CALL_SWAP(from:<@%s> to:<@%s> start:%s %s end:%s %s)
BEEP BOOP
ESCHATON IMMANTIZED
END OF LINE`+"```",
		c.Request.Requestor, c.TakingUser,
		w.StartDate, w.StartTime,
		w.EndDate, w.EndTime,
	)
}

// confirmationMessage renders the human-readable confirmation.
func confirmationMessage(c domain.SwapConfirmation) string {
	w := c.Request.Window
	return fmt.Sprintf(`On call swap confirmed
<@%s> will be on-call
from: *%s %s*
to: *%s %s*
in place of <@%s>`,
		c.TakingUser,
		w.StartDate, w.StartTime,
		w.EndDate, w.EndTime,
		c.Request.Requestor,
	)
}

func welcomeMessage(member string) string {
	return fmt.Sprintf(":tada: Welcome <@%s>!\n%s", member, HelpText)
}
