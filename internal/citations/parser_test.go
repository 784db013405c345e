package citations

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "no citations",
			text: "O candidato deve analisar o caso com atenção.",
			want: nil,
		},
		{
			name: "article with source abbreviation",
			text: "Conforme o Art. 74, § 1º, CF/88, compete ao tribunal julgar as contas.",
			want: []string{"Art. 74, § 1º, CF/88"},
		},
		{
			name: "artigo spelled out",
			text: "O Artigo 121 do CP tipifica o homicídio.",
			want: []string{"Art. 121, CP"},
		},
		{
			name: "article within law",
			text: "Nos termos do Art. 6º, inciso XXII, da Lei nº 14.133/21, considera-se licitação.",
			want: []string{"Art. 6º, inciso XXII, Lei 14.133/2021"},
		},
		{
			name: "standalone law with two digit year",
			text: "A Lei 8.112/90 rege o regime dos servidores.",
			want: []string{"Lei 8.112/1990"},
		},
		{
			name: "law year normalization splits at fifty",
			text: "Ver Lei 4.320/64 e Lei 14.133/21.",
			want: []string{"Lei 14.133/2021", "Lei 4.320/1964"},
		},
		{
			name: "sumula with court",
			text: "Aplica-se a Súmula 473 do STF ao caso.",
			want: []string{"Súmula 473 STF"},
		},
		{
			name: "sumula vinculante",
			text: "Incide a Súmula Vinculante 13.",
			want: []string{"Súmula Vinculante 13"},
		},
		{
			name: "article of a named code",
			text: "O Art. 121 do Código Penal prevê a pena de reclusão.",
			want: []string{"Art. 121, CP"},
		},
		{
			name: "article of the constitution",
			text: "Nos termos do Art. 37 da Constituição Federal, a administração obedece à legalidade.",
			want: []string{"Art. 37, CF/88"},
		},
		{
			name: "duplicates collapse",
			text: "A Lei 8.112/90 e novamente a Lei 8.112/90.",
			want: []string{"Lei 8.112/1990"},
		},
		{
			name: "mixed citations sorted",
			text: "Ver Art. 5 da Constituição Federal, a Lei 9.784/99 e a Súmula 473 do STF.",
			want: []string{"Art. 5, CF/88", "Lei 9.784/1999", "Súmula 473 STF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractDoesNotDoubleReportEmbeddedLaw(t *testing.T) {
	got := Extract("Conforme o Art. 6º da Lei nº 14.133/21.")

	want := []string{"Art. 6º, Lei 14.133/2021"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"21", "2021"},
		{"50", "2050"},
		{"51", "1951"},
		{"90", "1990"},
		{"1999", "1999"},
	}

	for _, tt := range tests {
		if got := normalizeYear(tt.in); got != tt.want {
			t.Errorf("normalizeYear(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
