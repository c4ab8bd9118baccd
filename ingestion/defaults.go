package ingestion

// DefaultBank is the built-in question bank used to seed an empty catalog:
// four categories with five questions each.
func DefaultBank() Bank {
	return Bank{Categories: []BankCategory{
		{
			Name:        "Computer Science",
			Description: "Programming, algorithms, and computer fundamentals",
			Questions: []BankQuestion{
				{
					Text:    "What does CPU stand for?",
					OptionA: "Computer Processing Unit", OptionB: "Central Processing Unit",
					OptionC: "Central Program Unit", OptionD: "Computer Program Unit",
					Correct: "B", Difficulty: "Easy",
				},
				{
					Text:    "Which language is known as the backbone of web development?",
					OptionA: "Python", OptionB: "JavaScript",
					OptionC: "Java", OptionD: "C++",
					Correct: "B", Difficulty: "Easy",
				},
				{
					Text:    "What does HTML stand for?",
					OptionA: "Hyper Text Markup Language", OptionB: "High Tech Modern Language",
					OptionC: "Hyper Transfer Markup Language", OptionD: "Home Tool Markup Language",
					Correct: "A", Difficulty: "Easy",
				},
				{
					Text:    "Which data structure uses LIFO principle?",
					OptionA: "Queue", OptionB: "Stack",
					OptionC: "Array", OptionD: "Linked List",
					Correct: "B", Difficulty: "Medium",
				},
				{
					Text:    "What is the time complexity of binary search?",
					OptionA: "O(n)", OptionB: "O(n log n)",
					OptionC: "O(log n)", OptionD: "O(1)",
					Correct: "C", Difficulty: "Medium",
				},
			},
		},
		{
			Name:        "Mathematics",
			Description: "Algebra, calculus, and mathematical concepts",
			Questions: []BankQuestion{
				{
					Text:    "What is the result of 15 + 25 × 2?",
					OptionA: "80", OptionB: "65",
					OptionC: "50", OptionD: "40",
					Correct: "B", Difficulty: "Easy",
				},
				{
					Text:    "What is the square root of 144?",
					OptionA: "12", OptionB: "14",
					OptionC: "16", OptionD: "18",
					Correct: "A", Difficulty: "Easy",
				},
				{
					Text:    "What is 30% of 150?",
					OptionA: "45", OptionB: "35",
					OptionC: "50", OptionD: "40",
					Correct: "A", Difficulty: "Easy",
				},
				{
					Text:    "What is the derivative of x²?",
					OptionA: "x", OptionB: "2x",
					OptionC: "2", OptionD: "x²",
					Correct: "B", Difficulty: "Medium",
				},
				{
					Text:    "What is the value of π (pi) approximately?",
					OptionA: "3.14", OptionB: "2.71",
					OptionC: "1.61", OptionD: "3.16",
					Correct: "A", Difficulty: "Easy",
				},
			},
		},
		{
			Name:        "Science",
			Description: "Physics, chemistry, and biology",
			Questions: []BankQuestion{
				{
					Text:    "What is the chemical symbol for Gold?",
					OptionA: "Go", OptionB: "Gd",
					OptionC: "Au", OptionD: "Ag",
					Correct: "C", Difficulty: "Easy",
				},
				{
					Text:    "Which gas do plants absorb from the atmosphere?",
					OptionA: "Oxygen", OptionB: "Nitrogen",
					OptionC: "Carbon Dioxide", OptionD: "Hydrogen",
					Correct: "C", Difficulty: "Easy",
				},
				{
					Text:    "What is the hardest natural substance on Earth?",
					OptionA: "Gold", OptionB: "Iron",
					OptionC: "Diamond", OptionD: "Platinum",
					Correct: "C", Difficulty: "Easy",
				},
				{
					Text:    "What is the atomic number of Carbon?",
					OptionA: "6", OptionB: "12",
					OptionC: "14", OptionD: "8",
					Correct: "A", Difficulty: "Medium",
				},
				{
					Text:    "Which planet is known as the Red Planet?",
					OptionA: "Venus", OptionB: "Mars",
					OptionC: "Jupiter", OptionD: "Saturn",
					Correct: "B", Difficulty: "Easy",
				},
			},
		},
		{
			Name:        "General Knowledge",
			Description: "Current affairs, history, and general awareness",
			Questions: []BankQuestion{
				{
					Text:    "What is the capital of Australia?",
					OptionA: "Sydney", OptionB: "Melbourne",
					OptionC: "Canberra", OptionD: "Perth",
					Correct: "C", Difficulty: "Easy",
				},
				{
					Text:    "Who wrote \"Romeo and Juliet\"?",
					OptionA: "Charles Dickens", OptionB: "William Shakespeare",
					OptionC: "Jane Austen", OptionD: "Mark Twain",
					Correct: "B", Difficulty: "Easy",
				},
				{
					Text:    "Which country is known as the Land of the Rising Sun?",
					OptionA: "China", OptionB: "Thailand",
					OptionC: "Japan", OptionD: "South Korea",
					Correct: "C", Difficulty: "Easy",
				},
				{
					Text:    "What is the largest ocean on Earth?",
					OptionA: "Atlantic Ocean", OptionB: "Indian Ocean",
					OptionC: "Arctic Ocean", OptionD: "Pacific Ocean",
					Correct: "D", Difficulty: "Easy",
				},
				{
					Text:    "In which year did World War II end?",
					OptionA: "1944", OptionB: "1945",
					OptionC: "1946", OptionD: "1947",
					Correct: "B", Difficulty: "Medium",
				},
			},
		},
	}}
}
