package valmiki

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sargaFixture = `
<div class="view-content">
	<div class="views-row views-row-1">
		<div class="views-field views-field-body">
			<div class="field-content">
				<p>తపస్స్వాధ్యాయనిరతం తపస్వీ వాగ్విదాం వరమ్.</p>
				<p>నారదం పరిపప్రచ్ఛ వాల్మీకిర్మునిపుఙ్గవమ్৷৷1.1.1৷৷</p>
				<p>[శ్లోకం]</p>
			</div>
		</div>
		<div class="views-field views-field-field-htetrans">
			<div class="field-content">తపస్వీ ascetic, వాగ్విదాంవరమ్ eloquent among the knowledgeable, మునిపుఙ్గవమ్ pre-eminent among sages, of the sages, నారదమ్ Narada,</div>
		</div>
		<div class="views-field views-field-field-explanation">
			<div class="field-content">
				The ascetic Valmiki enquired of Narada,
				preeminent among the sages.
			</div>
		</div>
	</div>
	<div class="views-row views-row-2">
		<div class="views-field views-field-body">
			<div class="field-content">
				<p>కోన్వస్మిన్సామ్ప్రతం లోకే గుణవాన్కశ్చ వీర్యవాన్.</p>
				<p>ధర్మజ్ఞశ్చ కృతజ్ఞశ్చ సత్యవాక్యో దృఢవ్రత:৷৷1.1.2৷৷</p>
				<p>৷৷</p>
			</div>
		</div>
		<div class="views-field views-field-field-htetrans">
			<div class="field-content"></div>
		</div>
		<div class="views-field views-field-field-explanation">
			<div class="field-content">Who in this world is virtuous and valiant?</div>
		</div>
	</div>
</div>
`

func TestParseSarga(t *testing.T) {
	slokas, err := ParseSarga([]byte(sargaFixture))
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, slokas, 2)

	expected := []Sloka{
		{
			Index:  1,
			Number: "1.1.1",
			Text:   "తపస్స్వాధ్యాయనిరతం తపస్వీ వాగ్విదాం వరమ్.\nనారదం పరిపప్రచ్ఛ వాల్మీకిర్మునిపుఙ్గవమ్",
			Gloss: map[string]string{
				"తపస్వీ":         "ascetic",
				"వాగ్విదాంవరమ్":  "eloquent among the knowledgeable",
				"మునిపుఙ్గవమ్":   "pre-eminent among sages",
				"నారదమ్":         "Narada",
			},
			Translation: "The ascetic Valmiki enquired of Narada, preeminent among the sages.",
		},
		{
			Index:       2,
			Number:      "1.1.2",
			Text:        "కోన్వస్మిన్సామ్ప్రతం లోకే గుణవాన్కశ్చ వీర్యవాన్.\nధర్మజ్ఞశ్చ కృతజ్ఞశ్చ సత్యవాక్యో దృఢవ్రత:",
			Gloss:       map[string]string{},
			Translation: "Who in this world is virtuous and valiant?",
		},
	}
	if diff := cmp.Diff(expected, slokas); diff != "" {
		t.Fatalf("parsed slokas mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSargaEmpty(t *testing.T) {
	slokas, err := ParseSarga(nil)
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, slokas)

	slokas, err = ParseSarga([]byte("<html><body><p>page not found</p></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, slokas)
}

func TestParseBody(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantNumber string
		wantText   string
	}{
		{
			name:       "marker on second line",
			body:       "line one.\nline two৷৷1.2.3৷৷",
			wantNumber: "1.2.3",
			wantText:   "line one.\nline two",
		},
		{
			name:       "no marker leaves number unset",
			body:       "line one\nline two",
			wantNumber: "",
			wantText:   "line one\nline two",
		},
		{
			name:       "punctuation and metadata lines dropped",
			body:       "[3-5]\n. , ।\nవరమ్৷৷1.1.4৷৷",
			wantNumber: "1.1.4",
			wantText:   "వరమ్",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			number, text := parseBody(test.body)
			require.Equal(t, test.wantNumber, number)
			require.Equal(t, test.wantText, text)
		})
	}
}

func TestParseGloss(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "empty stream",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "single pair with trailing comma",
			input: "రామ: Rama,",
			want:  map[string]string{"రామ:": "Rama"},
		},
		{
			name:  "multi word meanings",
			input: "వీర్యవాన్ full of valour, ధర్మజ్ఞ: knower of righteousness,",
			want: map[string]string{
				"వీర్యవాన్": "full of valour",
				"ధర్మజ్ఞ:":  "knower of righteousness",
			},
		},
		{
			name:  "latin only tokens are noise",
			input: "the one who, రామ: Rama,",
			want:  map[string]string{"రామ:": "Rama"},
		},
		{
			name:  "unterminated final pair",
			input: "రామ: Rama, సీతా Sita",
			want:  map[string]string{"రామ:": "Rama", "సీతా": "Sita"},
		},
		{
			name:  "token without meaning dropped",
			input: "రామ:,",
			want:  map[string]string{},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			got := parseGloss(test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Fatalf("gloss mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
