// Package agents defines the demo personas: an instruction template per
// "day" plus the tool functions the hosted model may call. Tool results use
// a {success, message} payload shape so failures stay soft — they inform the
// model rather than abort the turn. The exceptions (tutor mode switch,
// persistence write errors) return real errors and end the turn.
package agents

// result is the payload shape every tool returns to the model.
type result map[string]any

func failure(message string) result {
	return result{"success": false, "message": message}
}

func success(message string) result {
	return result{"success": true, "message": message}
}

func (r result) with(key string, value any) result {
	r[key] = value
	return r
}
