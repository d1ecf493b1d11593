package domain

// DefaultBankID identifies the built-in bank.
const DefaultBankID = "web-basics"

// DefaultBank returns the built-in ten-question HTML/CSS/JS bank.
func DefaultBank() Bank {
	return Bank{
		ID:    DefaultBankID,
		Title: "Quantum Shift: web basics",
		Questions: []Question{
			{
				Text:         "In JavaScript, which keyword is commonly used to declare a variable that can change?",
				Options:      []string{"const", "let", "fixed", "define"},
				CorrectIndex: 1,
				Explanation:  "Use 'let' when you plan to reassign the variable later. 'const' is for values that stay the same.",
			},
			{
				Text:         "Which HTML tag is best for the main visible heading on a page?",
				Options:      []string{"<title>", "<h1>", "<head>", "<strong>"},
				CorrectIndex: 1,
				Explanation:  "<h1> is usually the main heading in the body. The <title> element controls the browser tab text.",
			},
			{
				Text:         "In CSS, a selector that starts with a dot (.) selects elements by what?",
				Options:      []string{"ID", "tag name", "class", "attribute"},
				CorrectIndex: 2,
				Explanation:  "A dot selects by class name. Example: .btn targets elements with class=\"btn\".",
			},
			{
				Text:         "Which symbol is used to start a single-line comment in JavaScript?",
				Options:      []string{"#", "//", "<!--", "/*"},
				CorrectIndex: 1,
				Explanation:  "Single-line comments start with //. Block comments use /* ... */.",
			},
			{
				Text:         "Where should the main content of an HTML page usually go?",
				Options:      []string{"Inside <main>", "Inside <meta>", "Inside <style>", "Inside the doctype"},
				CorrectIndex: 0,
				Explanation:  "Semantic HTML usually places the main content inside the <main> element.",
			},
			{
				Text:         "Which CSS property controls the space outside an element's border?",
				Options:      []string{"padding", "margin", "border-width", "outline"},
				CorrectIndex: 1,
				Explanation:  "Margin is the outside space. Padding is the inner space between content and border.",
			},
			{
				Text:         "What does DOM stand for in web development?",
				Options:      []string{"Document Object Model", "Data Object Map", "Dynamic Output Manager", "Document Order Machine"},
				CorrectIndex: 0,
				Explanation:  "DOM stands for Document Object Model. JavaScript uses it to work with page elements.",
			},
			{
				Text:         "Which HTML element is normally used for a clickable button that runs JavaScript?",
				Options:      []string{"<input type='text'>", "<span>", "<button>", "<label>"},
				CorrectIndex: 2,
				Explanation:  "<button> is the usual choice for click actions and event handlers.",
			},
			{
				Text:         "In CSS, how do you select an element with id=\"game\"?",
				Options:      []string{"game { }", ".game { }", "#game { }", "id.game { }"},
				CorrectIndex: 2,
				Explanation:  "Use # followed by the id. So #game selects the element whose id is \"game\".",
			},
			{
				Text:         "Which JavaScript method writes a message to the browser's console?",
				Options:      []string{"console.write()", "window.alert()", "console.log()", "document.message()"},
				CorrectIndex: 2,
				Explanation:  "console.log() is commonly used to print messages and debug values.",
			},
		},
	}
}
