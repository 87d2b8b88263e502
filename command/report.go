package command

// Report sends what an outcome has to say through the message's channel: the
// result text, an error report, or nothing at all.
func (b *Bot) Report(msg *Message, o Outcome) error {
	if msg.Channel == nil {
		return nil
	}

	switch o.Kind {
	case OutcomeHandled:
		if o.Result == "" {
			return nil
		}
		return msg.Channel.Send(Text(o.Result))
	case OutcomeFailed:
		return msg.Channel.Send(NewErrorReport(o.Failure))
	default:
		return nil
	}
}
