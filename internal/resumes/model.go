package resumes

// RawTextLimit is the number of characters of extracted text echoed back.
const RawTextLimit = 1000

// Parsed is the outcome of one résumé parse.
type Parsed struct {
	Skills    []string
	Education []string
	RawText   string
	Pages     int
	MimeType  string
}

// Response is the JSON body of POST /parse-resume.
type Response struct {
	Skills    []string `json:"skills"`
	Education []string `json:"education"`
	RawText   string   `json:"raw_text"`
}

func toResponse(p Parsed) Response {
	resp := Response{Skills: p.Skills, Education: p.Education, RawText: p.RawText}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if resp.Education == nil {
		resp.Education = []string{}
	}
	return resp
}
