package domain

// Profile is the "about me" record.
type Profile struct {
	Name         string `json:"nome"`
	Title        string `json:"titulo"`
	Location     string `json:"localizacao"`
	Email        string `json:"email"`
	Phone        string `json:"telefone"`
	GitHub       string `json:"github"`
	LinkedIn     string `json:"linkedin"`
	Description  string `json:"descricao"`
	Availability string `json:"disponibilidade"`
}

// Project is a portfolio project. IDs are unique within one snapshot.
type Project struct {
	ID               string   `json:"id"`
	Name             string   `json:"nome"`
	ShortDescription string   `json:"descricao_curta"`
	LongDescription  string   `json:"descricao_completa"`
	Technologies     []string `json:"tecnologias"`
	Features         []string `json:"funcionalidades"`
	Learnings        []string `json:"aprendizados"`
	RepoURL          *string  `json:"repositorio"`
	DemoURL          *string  `json:"demo"`
	Featured         bool     `json:"destaque"`
}

// StackItem is one technology of the tech stack.
type StackItem struct {
	Name     string  `json:"nome"`
	Category string  `json:"categoria"`
	Level    int     `json:"nivel"`
	Icon     *string `json:"icone"`
}

// ContactMessage is a contact form submission. Its fields are validated by
// the inbound request contract before it is built.
type ContactMessage struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Body        string
}
